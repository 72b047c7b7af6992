package derivedkey

import (
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/constants"
)

// DerivedKey is the Argon2 output split into the payload cipher key and the
// header MAC key.
type DerivedKey struct {
	EncryptKey []byte
	MacKey     []byte
}

func Derive(passphrase, salt []byte, variant argon2.Variant, version argon2.Version, params argon2.Params) (k DerivedKey, err error) {
	raw, err := argon2.Key(passphrase, salt, variant, version, params, constants.DerivedKeySize)
	if err != nil {
		return
	}

	return Split(raw)
}

// Split slices raw without copying; Wipe on the result clears raw as well.
func Split(raw []byte) (k DerivedKey, err error) {
	if len(raw) != constants.DerivedKeySize {
		err = fmt.Errorf("derived key must be %d bytes, got %d", constants.DerivedKeySize, len(raw))
		return
	}

	k.EncryptKey = raw[:constants.EncryptKeySize:constants.EncryptKeySize]
	k.MacKey = raw[constants.EncryptKeySize:]

	return
}

func (k DerivedKey) Wipe() {
	clear(k.EncryptKey)
	clear(k.MacKey)
}
