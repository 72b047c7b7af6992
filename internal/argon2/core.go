package argon2

import (
	"encoding/binary"
	"sync"

	"github.com/fhilgers/goabcrypt/internal/constants"
	"golang.org/x/crypto/blake2b"
)

const (
	blockWords = constants.Argon2BlockSize / 8
	syncPoints = constants.Argon2SyncPoints
)

type block [blockWords]uint64

func deriveKey(variant Variant, version Version, password, salt, secret, data []byte, time, memory, lanes, keyLen uint32) []byte {
	h0 := initHash(variant, version, password, salt, secret, data, time, memory, lanes, keyLen)

	// Round down to a multiple of 4*lanes; the caller guarantees memory >= 8*lanes.
	segments := syncPoints * lanes
	memory = memory / segments * segments
	if memory < 2*segments {
		memory = 2 * segments
	}

	b := initBlocks(&h0, memory, lanes)
	fillMemory(b, variant, version, time, memory, lanes)
	return finalize(b, memory, lanes, keyLen)
}

func initHash(variant Variant, version Version, password, salt, secret, data []byte, time, memory, lanes, keyLen uint32) [blake2b.Size + 8]byte {
	var (
		h0     [blake2b.Size + 8]byte
		params [24]byte
		length [4]byte
	)

	h, _ := blake2b.New512(nil)
	binary.LittleEndian.PutUint32(params[0:4], lanes)
	binary.LittleEndian.PutUint32(params[4:8], keyLen)
	binary.LittleEndian.PutUint32(params[8:12], memory)
	binary.LittleEndian.PutUint32(params[12:16], time)
	binary.LittleEndian.PutUint32(params[16:20], uint32(version))
	binary.LittleEndian.PutUint32(params[20:24], uint32(variant))
	h.Write(params[:])
	for _, in := range [][]byte{password, salt, secret, data} {
		binary.LittleEndian.PutUint32(length[:], uint32(len(in)))
		h.Write(length[:])
		h.Write(in)
	}
	h.Sum(h0[:0])
	return h0
}

func initBlocks(h0 *[blake2b.Size + 8]byte, memory, lanes uint32) []block {
	var buf [constants.Argon2BlockSize]byte

	b := make([]block, memory)
	laneLength := memory / lanes
	for lane := uint32(0); lane < lanes; lane++ {
		binary.LittleEndian.PutUint32(h0[blake2b.Size+4:], lane)
		for i := uint32(0); i < 2; i++ {
			binary.LittleEndian.PutUint32(h0[blake2b.Size:], i)
			hashVariable(buf[:], h0[:])
			dst := &b[lane*laneLength+i]
			for k := range dst {
				dst[k] = binary.LittleEndian.Uint64(buf[k*8:])
			}
		}
	}
	return b
}

func fillMemory(b []block, variant Variant, version Version, time, memory, lanes uint32) {
	laneLength := memory / lanes
	segmentLength := laneLength / syncPoints

	fillSegment := func(pass, slice, lane uint32) {
		var addresses, in, zero block

		dataIndependent := variant == Argon2i || (variant == Argon2id && pass == 0 && slice < syncPoints/2)
		if dataIndependent {
			in[0] = uint64(pass)
			in[1] = uint64(lane)
			in[2] = uint64(slice)
			in[3] = uint64(memory)
			in[4] = uint64(time)
			in[5] = uint64(variant)
		}

		index := uint32(0)
		if pass == 0 && slice == 0 {
			// The first two blocks of every lane come from initBlocks.
			index = 2
			if dataIndependent {
				nextAddresses(&addresses, &in, &zero)
			}
		}

		offset := lane*laneLength + slice*segmentLength + index
		for ; index < segmentLength; index, offset = index+1, offset+1 {
			prev := offset - 1
			if index == 0 && slice == 0 {
				prev += laneLength
			}

			var random uint64
			if dataIndependent {
				if index%blockWords == 0 {
					nextAddresses(&addresses, &in, &zero)
				}
				random = addresses[index%blockWords]
			} else {
				random = b[prev][0]
			}

			ref := indexAlpha(random, laneLength, segmentLength, lanes, pass, slice, lane, index)
			// Revision 0x10 overwrites blocks on every pass; 0x13 XORs into
			// them after the first.
			processBlock(&b[offset], &b[prev], &b[ref], version == V0x13 && pass > 0)
		}
	}

	for pass := uint32(0); pass < time; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < lanes; lane++ {
				wg.Add(1)
				go func(lane uint32) {
					defer wg.Done()
					fillSegment(pass, slice, lane)
				}(lane)
			}
			wg.Wait()
		}
	}
}

func nextAddresses(addresses, in, zero *block) {
	in[6]++
	processBlock(addresses, in, zero, false)
	processBlock(addresses, addresses, zero, false)
}

func indexAlpha(random uint64, laneLength, segmentLength, lanes, pass, slice, lane, index uint32) uint32 {
	refLane := uint32(random>>32) % lanes
	if pass == 0 && slice == 0 {
		refLane = lane
	}

	area, start := 3*segmentLength, ((slice+1)%syncPoints)*segmentLength
	if lane == refLane {
		area += index
	}
	if pass == 0 {
		area, start = slice*segmentLength, 0
		if slice == 0 || lane == refLane {
			area += index
		}
	}
	if index == 0 || lane == refLane {
		area--
	}
	return phi(random, uint64(area), uint64(start), refLane, laneLength)
}

func phi(random, area, start uint64, lane, laneLength uint32) uint32 {
	p := random & 0xFFFFFFFF
	p = (p * p) >> 32
	p = (p * area) >> 32
	return lane*laneLength + uint32((start+area-(p+1))%uint64(laneLength))
}

func finalize(b []block, memory, lanes, keyLen uint32) []byte {
	laneLength := memory / lanes
	last := b[memory-1]
	for lane := uint32(0); lane < lanes-1; lane++ {
		for i, v := range b[lane*laneLength+laneLength-1] {
			last[i] ^= v
		}
	}

	var buf [constants.Argon2BlockSize]byte
	for i, v := range last {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	key := make([]byte, keyLen)
	hashVariable(key, buf[:])
	return key
}

// hashVariable is the variable-length hash H' built on BLAKE2b.
func hashVariable(out, in []byte) {
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(out)))

	if len(out) <= blake2b.Size {
		h, _ := blake2b.New(len(out), nil)
		h.Write(prefix[:])
		h.Write(in)
		h.Sum(out[:0])
		return
	}

	var v [blake2b.Size]byte
	h, _ := blake2b.New512(nil)
	h.Write(prefix[:])
	h.Write(in)
	h.Sum(v[:0])

	n := copy(out, v[:blake2b.Size/2])
	for len(out)-n > blake2b.Size {
		v = blake2b.Sum512(v[:])
		n += copy(out[n:], v[:blake2b.Size/2])
	}

	h, _ = blake2b.New(len(out)-n, nil)
	h.Write(v[:])
	h.Sum(out[n:n])
}
