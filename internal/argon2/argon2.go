// Package argon2 implements the Argon2 memory-hard function in all three
// variants and both revisions used by the abcrypt format.
//
// golang.org/x/crypto/argon2 only offers Argon2i and Argon2id at revision
// 0x13 with at most 255 lanes. Those derivations are handed to it; the rest
// run on the portable implementation in this package, which produces
// identical output for the shared cases.
package argon2

import (
	"math"

	xargon2 "golang.org/x/crypto/argon2"
)

// Key derives keyLen bytes from password and salt. The parameters are
// validated before any memory is allocated.
func Key(password, salt []byte, variant Variant, version Version, params Params, keyLen uint32) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !variant.Valid() {
		return nil, &InvalidVariantError{Value: uint32(variant)}
	}
	if !version.Valid() {
		return nil, &InvalidVersionError{Value: uint32(version)}
	}

	if version == V0x13 && params.Parallelism <= math.MaxUint8 {
		lanes := uint8(params.Parallelism)
		switch variant {
		case Argon2i:
			return xargon2.Key(password, salt, params.TimeCost, params.MemoryCost, lanes, keyLen), nil
		case Argon2id:
			return xargon2.IDKey(password, salt, params.TimeCost, params.MemoryCost, lanes, keyLen), nil
		}
	}

	return deriveKey(variant, version, password, salt, nil, nil, params.TimeCost, params.MemoryCost, params.Parallelism, keyLen), nil
}
