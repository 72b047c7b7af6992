package header

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"

	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/constants"
)

// Header is the decoded form of every header version. Version 0 headers do
// not store Variant and Argon2Version; they are always Argon2id rev 0x13.
type Header struct {
	Version       Version
	Variant       argon2.Variant
	Argon2Version argon2.Version
	Params        argon2.Params
	Salt          []byte
	Nonce         []byte
	Mac           []byte
}

// New returns a latest-version header with a fresh salt and nonce. Mac is
// left empty until Sign is called.
func New(variant argon2.Variant, version argon2.Version, params argon2.Params) (h Header, err error) {
	h = Header{
		Version:       Latest,
		Variant:       variant,
		Argon2Version: version,
		Params:        params,
		Salt:          make([]byte, constants.SaltSize),
		Nonce:         make([]byte, constants.NonceSize),
	}

	if _, err = rand.Read(h.Salt); err != nil {
		return
	}

	_, err = rand.Read(h.Nonce)

	return
}

// Marshal lays the header out for h.Version. A missing Mac is written as
// zeros.
func (h Header) Marshal() []byte {
	l := h.Version.layout()
	buf := make([]byte, l.size)

	copy(buf, constants.MagicNumber)
	buf[constants.MagicSize] = byte(h.Version)

	if l.context >= 0 {
		binary.LittleEndian.PutUint32(buf[l.context:], uint32(h.Variant))
		binary.LittleEndian.PutUint32(buf[l.context+4:], uint32(h.Argon2Version))
	}

	binary.LittleEndian.PutUint32(buf[l.params:], h.Params.MemoryCost)
	binary.LittleEndian.PutUint32(buf[l.params+4:], h.Params.TimeCost)
	binary.LittleEndian.PutUint32(buf[l.params+8:], h.Params.Parallelism)

	copy(buf[l.salt:l.nonce], h.Salt)
	copy(buf[l.nonce:l.mac], h.Nonce)
	copy(buf[l.mac:], h.Mac)

	return buf
}

// Sign computes the header MAC over the marshalled fields and stores it.
func (h *Header) Sign(macKey []byte) (err error) {
	buf := h.Marshal()

	h.Mac, err = ComputeMAC(macKey, buf[:h.Version.MacOffset()])

	return
}

func (h Header) Verify(macKey []byte) error {
	buf := h.Marshal()

	ok, err := VerifyMAC(macKey, buf[:h.Version.MacOffset()], h.Mac)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidHeaderMAC
	}

	return nil
}

// Parse decodes the header at the start of a whole container. The length
// check always assumes the largest header, even for version 0. When
// allowV0 is false, version 0 is rejected as unsupported.
func Parse(data []byte, allowV0 bool) (h Header, err error) {
	if len(data) < constants.MinContainerSize {
		err = ErrInputTooShort
		return
	}

	if !bytes.Equal(data[:constants.MagicSize], []byte(constants.MagicNumber)) {
		err = ErrInvalidMagicNumber
		return
	}

	h.Version = Version(data[constants.MagicSize])
	switch {
	case !h.Version.Known():
		err = &UnknownVersionError{Version: uint8(h.Version)}
		return
	case h.Version == V0 && !allowV0:
		err = &UnsupportedVersionError{Version: uint8(h.Version)}
		return
	}

	l := h.Version.layout()

	h.Variant, h.Argon2Version = argon2.Argon2id, argon2.V0x13
	if l.context >= 0 {
		if h.Variant, err = argon2.VariantFromUint32(binary.LittleEndian.Uint32(data[l.context:])); err != nil {
			return
		}
		if h.Argon2Version, err = argon2.VersionFromUint32(binary.LittleEndian.Uint32(data[l.context+4:])); err != nil {
			return
		}
	}

	h.Params = argon2.Params{
		MemoryCost:  binary.LittleEndian.Uint32(data[l.params:]),
		TimeCost:    binary.LittleEndian.Uint32(data[l.params+4:]),
		Parallelism: binary.LittleEndian.Uint32(data[l.params+8:]),
	}

	h.Salt = bytes.Clone(data[l.salt:l.nonce])
	h.Nonce = bytes.Clone(data[l.nonce:l.mac])
	h.Mac = bytes.Clone(data[l.mac:l.size])

	return
}
