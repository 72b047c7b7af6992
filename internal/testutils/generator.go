package testutils

import (
	"github.com/fhilgers/goabcrypt/internal/argon2"
	"pgregory.net/rapid"
)

func FixedSizeByteArray(constant int) *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.Byte(), constant, constant)
}

// SmallParams draws valid Argon2 parameters that are cheap enough to run
// hundreds of derivations in a single test.
func SmallParams() *rapid.Generator[argon2.Params] {
	return rapid.Custom(func(t *rapid.T) argon2.Params {
		lanes := rapid.Uint32Range(1, 4).Draw(t, "parallelism")
		return argon2.Params{
			MemoryCost:  rapid.Uint32Range(8*lanes, 64).Draw(t, "memoryCost"),
			TimeCost:    rapid.Uint32Range(1, 3).Draw(t, "timeCost"),
			Parallelism: lanes,
		}
	})
}

func Variant() *rapid.Generator[argon2.Variant] {
	return rapid.SampledFrom([]argon2.Variant{argon2.Argon2d, argon2.Argon2i, argon2.Argon2id})
}

func Argon2Version() *rapid.Generator[argon2.Version] {
	return rapid.SampledFrom([]argon2.Version{argon2.V0x10, argon2.V0x13})
}

func Passphrase() *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.Byte(), 0, 64)
}

func Plaintext() *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.Byte(), 0, 1024)
}
