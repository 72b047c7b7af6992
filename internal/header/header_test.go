package header_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/constants"
	"github.com/fhilgers/goabcrypt/internal/header"
	"github.com/fhilgers/goabcrypt/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew(t *testing.T) {
	h, err := header.New(argon2.Argon2id, argon2.V0x13, argon2.DefaultParams())
	assert.NoError(t, err)

	assert.Equal(t, header.V1, h.Version)
	assert.Len(t, h.Salt, constants.SaltSize)
	assert.Len(t, h.Nonce, constants.NonceSize)
	assert.Empty(t, h.Mac)

	h2, err := header.New(argon2.Argon2id, argon2.V0x13, argon2.DefaultParams())
	assert.NoError(t, err)
	assert.NotEqual(t, h.Salt, h2.Salt)
	assert.NotEqual(t, h.Nonce, h2.Nonce)
}

func TestSizes(t *testing.T) {
	assert.Equal(t, 140, header.V0.Size())
	assert.Equal(t, 76, header.V0.MacOffset())
	assert.Equal(t, 148, header.V1.Size())
	assert.Equal(t, 84, header.V1.MacOffset())
	assert.Equal(t, constants.HeaderSizeV0, header.V0.Size())
	assert.Equal(t, constants.HeaderSizeV1, header.V1.Size())
}

func TestMarshalOffsets(t *testing.T) {
	h := header.Header{
		Version:       header.V1,
		Variant:       argon2.Argon2i,
		Argon2Version: argon2.V0x10,
		Params:        argon2.Params{MemoryCost: 32, TimeCost: 3, Parallelism: 4},
		Salt:          bytes.Repeat([]byte{0xAA}, constants.SaltSize),
		Nonce:         bytes.Repeat([]byte{0xBB}, constants.NonceSize),
		Mac:           bytes.Repeat([]byte{0xCC}, constants.HeaderMacSize),
	}

	buf := h.Marshal()
	require.Len(t, buf, 148)

	assert.Equal(t, []byte("abcrypt"), buf[0:7])
	assert.Equal(t, byte(1), buf[7])
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[8:12]))
	assert.Equal(t, uint32(0x10), binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, uint32(32), binary.LittleEndian.Uint32(buf[16:20]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[20:24]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(buf[24:28]))
	assert.Equal(t, h.Salt, buf[28:60])
	assert.Equal(t, h.Nonce, buf[60:84])
	assert.Equal(t, h.Mac, buf[84:148])

	h.Version = header.V0
	buf = h.Marshal()
	require.Len(t, buf, 140)

	assert.Equal(t, byte(0), buf[7])
	assert.Equal(t, uint32(32), binary.LittleEndian.Uint32(buf[8:12]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[12:16]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(buf[16:20]))
	assert.Equal(t, h.Salt, buf[20:52])
	assert.Equal(t, h.Nonce, buf[52:76])
	assert.Equal(t, h.Mac, buf[76:140])
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		macKey := testutils.FixedSizeByteArray(constants.MacKeySize).Draw(t, "macKey")
		params := argon2.Params{
			MemoryCost:  rapid.Uint32().Draw(t, "memoryCost"),
			TimeCost:    rapid.Uint32().Draw(t, "timeCost"),
			Parallelism: rapid.Uint32().Draw(t, "parallelism"),
		}

		h1, err := header.New(testutils.Variant().Draw(t, "variant"), testutils.Argon2Version().Draw(t, "version"), params)
		assert.NoError(t, err)
		assert.NoError(t, h1.Sign(macKey))

		container := append(h1.Marshal(), make([]byte, constants.TagSize)...)

		h2, err := header.Parse(container, true)
		assert.NoError(t, err)
		assert.Equal(t, h1, h2)
		assert.NoError(t, h2.Verify(macKey))
	})
}

func TestVerifyTamper(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		macKey := testutils.FixedSizeByteArray(constants.MacKeySize).Draw(t, "macKey")

		h, err := header.New(argon2.Argon2id, argon2.V0x13, argon2.DefaultParams())
		assert.NoError(t, err)
		assert.NoError(t, h.Sign(macKey))

		container := append(h.Marshal(), make([]byte, constants.TagSize)...)

		// Everything past the version byte and the Argon2 context.
		i := rapid.IntRange(16, header.V1.Size()-1).Draw(t, "index")
		container[i] ^= 1 << rapid.IntRange(0, 7).Draw(t, "bit")

		tampered, err := header.Parse(container, true)
		assert.NoError(t, err)
		assert.ErrorIs(t, tampered.Verify(macKey), header.ErrInvalidHeaderMAC)
	})
}

func TestVerifyWrongKey(t *testing.T) {
	h, err := header.New(argon2.Argon2id, argon2.V0x13, argon2.DefaultParams())
	assert.NoError(t, err)
	assert.NoError(t, h.Sign(bytes.Repeat([]byte{1}, constants.MacKeySize)))

	assert.ErrorIs(t, h.Verify(bytes.Repeat([]byte{2}, constants.MacKeySize)), header.ErrInvalidHeaderMAC)
}

func validContainer(t *testing.T, version header.Version) []byte {
	h, err := header.New(argon2.Argon2id, argon2.V0x13, argon2.Params{MemoryCost: 32, TimeCost: 3, Parallelism: 4})
	require.NoError(t, err)
	h.Version = version
	require.NoError(t, h.Sign(make([]byte, constants.MacKeySize)))

	return append(h.Marshal(), make([]byte, constants.MinContainerSize)...)
}

func TestParseErrors(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := header.Parse(make([]byte, constants.MinContainerSize-1), true)
		assert.ErrorIs(t, err, header.ErrInputTooShort)
		assert.EqualError(t, err, "encrypted data is shorter than 164 bytes")
	})

	t.Run("too short is checked first", func(t *testing.T) {
		_, err := header.Parse([]byte("garbage"), true)
		assert.ErrorIs(t, err, header.ErrInputTooShort)
	})

	t.Run("magic", func(t *testing.T) {
		c := validContainer(t, header.V1)
		c[0] = 'A'
		_, err := header.Parse(c, true)
		assert.ErrorIs(t, err, header.ErrInvalidMagicNumber)
	})

	t.Run("unknown version", func(t *testing.T) {
		c := validContainer(t, header.V1)
		c[7] = 2
		_, err := header.Parse(c, true)

		var unknown *header.UnknownVersionError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, uint8(2), unknown.Version)
		assert.EqualError(t, err, "unknown version number `2`")
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := header.Parse(validContainer(t, header.V0), false)

		var unsupported *header.UnsupportedVersionError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, uint8(0), unsupported.Version)
		assert.EqualError(t, err, "unsupported version number `0`")
	})

	t.Run("variant", func(t *testing.T) {
		c := validContainer(t, header.V1)
		binary.LittleEndian.PutUint32(c[8:], 3)
		_, err := header.Parse(c, true)

		var variantErr *argon2.InvalidVariantError
		assert.ErrorAs(t, err, &variantErr)
	})

	t.Run("argon2 version", func(t *testing.T) {
		c := validContainer(t, header.V1)
		binary.LittleEndian.PutUint32(c[12:], 0x12)
		_, err := header.Parse(c, true)

		var versionErr *argon2.InvalidVersionError
		assert.ErrorAs(t, err, &versionErr)
	})
}

func TestParseDispatch(t *testing.T) {
	for _, version := range []header.Version{header.V0, header.V1} {
		t.Run(version.String(), func(t *testing.T) {
			c := validContainer(t, version)

			h, err := header.Parse(c, true)
			require.NoError(t, err)

			assert.Equal(t, version, h.Version)
			assert.Equal(t, argon2.Argon2id, h.Variant)
			assert.Equal(t, argon2.V0x13, h.Argon2Version)
			assert.Equal(t, argon2.Params{MemoryCost: 32, TimeCost: 3, Parallelism: 4}, h.Params)
			assert.Equal(t, c[version.MacOffset():version.Size()], h.Mac)
			assert.NoError(t, h.Verify(make([]byte, constants.MacKeySize)))
		})
	}
}

type container struct {
	Container []byte
	MacKey    []byte
}

func TestParseReference(t *testing.T) {
	testutils.WithTestdata(t, func(t *testing.T, input container, golden header.Header) {
		h, err := header.Parse(input.Container, true)
		assert.NoError(t, err)

		assert.Equal(t, golden, h)
		assert.NoError(t, h.Verify(input.MacKey))
	})
}
