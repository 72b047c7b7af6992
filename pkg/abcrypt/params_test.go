package abcrypt_test

import (
	"testing"

	"github.com/fhilgers/goabcrypt/pkg/abcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	container := encrypt(t, testPlaintext)

	params, err := abcrypt.ReadParams(container)
	require.NoError(t, err)
	assert.Equal(t, testParams, params)
}

func TestReadParamsCorruptedPayload(t *testing.T) {
	container := encrypt(t, testPlaintext)
	for i := abcrypt.HeaderSize; i < len(container); i++ {
		container[i] ^= 0xFF
	}

	params, err := abcrypt.ReadParams(container)
	require.NoError(t, err)
	assert.Equal(t, testParams, params)
}

func TestReadParamsUnvalidated(t *testing.T) {
	container := encrypt(t, testPlaintext)
	container[20], container[21], container[22], container[23] = 0, 0, 0, 0

	params, err := abcrypt.ReadParams(container)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), params.TimeCost)
}

func TestReadParamsErrors(t *testing.T) {
	_, err := abcrypt.ReadParams(make([]byte, 100))
	assert.ErrorIs(t, err, abcrypt.ErrInputTooShort)

	_, err = abcrypt.ReadParams(make([]byte, 200))
	assert.ErrorIs(t, err, abcrypt.ErrInvalidMagicNumber)

	container := encrypt(t, testPlaintext)
	container[7] = 255
	_, err = abcrypt.ReadParams(container)
	var unknown *abcrypt.UnknownVersionError
	assert.ErrorAs(t, err, &unknown)
}

func TestReadParameters(t *testing.T) {
	container, err := abcrypt.EncryptWithContext(testPlaintext, testPassphrase, abcrypt.Argon2d, abcrypt.Argon2V0x10, testParams)
	require.NoError(t, err)

	p, err := abcrypt.ReadParameters(container)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), p.Version)
	assert.Equal(t, testParams, p.Params)
	require.NotNil(t, p.Argon2)
	assert.Equal(t, abcrypt.Argon2d, p.Argon2.Variant)
	assert.Equal(t, abcrypt.Argon2V0x10, p.Argon2.Version)

	ctx, err := abcrypt.ReadArgon2Context(container)
	require.NoError(t, err)
	assert.Equal(t, *p.Argon2, ctx)
}

func TestReadParametersV0(t *testing.T) {
	container := encryptV0(t, make([]byte, 8), testPassphrase, testParams)

	p, err := abcrypt.ReadParameters(container)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), p.Version)
	assert.Equal(t, testParams, p.Params)
	assert.Nil(t, p.Argon2)

	ctx, err := abcrypt.ReadArgon2Context(container)
	require.NoError(t, err)
	assert.Equal(t, abcrypt.Argon2Context{Variant: abcrypt.Argon2id, Version: abcrypt.Argon2V0x13}, ctx)

	_, err = abcrypt.ReadParameters(container, abcrypt.WithoutLegacy())
	var unsupported *abcrypt.UnsupportedVersionError
	assert.ErrorAs(t, err, &unsupported)
}

func TestReadArgon2ContextInvalid(t *testing.T) {
	container := encrypt(t, testPlaintext)
	container[8] = 7

	_, err := abcrypt.ReadArgon2Context(container)
	var typeErr *abcrypt.InvalidArgon2TypeError
	assert.ErrorAs(t, err, &typeErr)
}
