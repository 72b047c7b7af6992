package argon2

import "math/bits"

// processBlock is the compression function G. out may alias in1.
func processBlock(out, in1, in2 *block, xor bool) {
	var r, t block
	for i := range r {
		r[i] = in1[i] ^ in2[i]
	}
	t = r

	for i := 0; i < blockWords; i += 16 {
		blamka(
			&t[i+0], &t[i+1], &t[i+2], &t[i+3],
			&t[i+4], &t[i+5], &t[i+6], &t[i+7],
			&t[i+8], &t[i+9], &t[i+10], &t[i+11],
			&t[i+12], &t[i+13], &t[i+14], &t[i+15],
		)
	}
	for i := 0; i < blockWords/8; i += 2 {
		blamka(
			&t[i], &t[i+1], &t[16+i], &t[16+i+1],
			&t[32+i], &t[32+i+1], &t[48+i], &t[48+i+1],
			&t[64+i], &t[64+i+1], &t[80+i], &t[80+i+1],
			&t[96+i], &t[96+i+1], &t[112+i], &t[112+i+1],
		)
	}

	if xor {
		for i := range t {
			out[i] ^= r[i] ^ t[i]
		}
		return
	}
	for i := range t {
		out[i] = r[i] ^ t[i]
	}
}

func blamka(v00, v01, v02, v03, v04, v05, v06, v07, v08, v09, v10, v11, v12, v13, v14, v15 *uint64) {
	mix(v00, v04, v08, v12)
	mix(v01, v05, v09, v13)
	mix(v02, v06, v10, v14)
	mix(v03, v07, v11, v15)

	mix(v00, v05, v10, v15)
	mix(v01, v06, v11, v12)
	mix(v02, v07, v08, v13)
	mix(v03, v04, v09, v14)
}

func mix(a, b, c, d *uint64) {
	*a = fBlaMka(*a, *b)
	*d = bits.RotateLeft64(*d^*a, -32)
	*c = fBlaMka(*c, *d)
	*b = bits.RotateLeft64(*b^*c, -24)

	*a = fBlaMka(*a, *b)
	*d = bits.RotateLeft64(*d^*a, -16)
	*c = fBlaMka(*c, *d)
	*b = bits.RotateLeft64(*b^*c, -63)
}

func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}
