package abcrypt

import (
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/constants"
	"github.com/fhilgers/goabcrypt/internal/derivedkey"
	"github.com/fhilgers/goabcrypt/internal/header"
	"github.com/fhilgers/goabcrypt/internal/payload"
)

// Encryptor holds the derived keys and header for one container. The
// expensive derivation happens in the constructor.
type Encryptor struct {
	header    header.Header
	cipher    *payload.Cipher
	plaintext []byte
}

func NewEncryptor(plaintext, passphrase []byte) (*Encryptor, error) {
	return NewEncryptorWithContext(plaintext, passphrase, Argon2id, Argon2V0x13, DefaultParams())
}

func NewEncryptorWithParams(plaintext, passphrase []byte, params Params) (*Encryptor, error) {
	return NewEncryptorWithContext(plaintext, passphrase, Argon2id, Argon2V0x13, params)
}

func NewEncryptorWithContext(plaintext, passphrase []byte, variant Argon2Type, version Argon2Version, params Params) (*Encryptor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	h, err := header.New(variant, version, params)
	if err != nil {
		return nil, err
	}

	k, err := derivedkey.Derive(passphrase, h.Salt, variant, version, params)
	if err != nil {
		return nil, err
	}
	defer k.Wipe()

	if err = h.Sign(k.MacKey); err != nil {
		return nil, err
	}

	c, err := payload.New(k.EncryptKey)
	if err != nil {
		return nil, err
	}

	return &Encryptor{header: h, cipher: c, plaintext: plaintext}, nil
}

// OutLen is the length of the container Encrypt produces.
func (e *Encryptor) OutLen() int {
	return e.header.Version.Size() + len(e.plaintext) + constants.TagSize
}

// Encrypt writes the container into buf, which must be exactly OutLen bytes
// long and must not overlap the plaintext.
func (e *Encryptor) Encrypt(buf []byte) {
	if len(buf) != e.OutLen() {
		panic(fmt.Sprintf("abcrypt: output buffer is %d bytes, want %d", len(buf), e.OutLen()))
	}

	n := copy(buf, e.header.Marshal())
	e.cipher.Seal(buf[n:n], e.header.Nonce, e.plaintext)
}

func (e *Encryptor) EncryptToSlice() []byte {
	buf := make([]byte, e.OutLen())
	e.Encrypt(buf)

	return buf
}

// Encrypt seals plaintext with Argon2id and the default parameters.
func Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	return EncryptWithContext(plaintext, passphrase, Argon2id, Argon2V0x13, DefaultParams())
}

func EncryptWithParams(plaintext, passphrase []byte, params Params) ([]byte, error) {
	return EncryptWithContext(plaintext, passphrase, Argon2id, Argon2V0x13, params)
}

func EncryptWithContext(plaintext, passphrase []byte, variant Argon2Type, version Argon2Version, params Params) ([]byte, error) {
	e, err := NewEncryptorWithContext(plaintext, passphrase, variant, version, params)
	if err != nil {
		return nil, err
	}

	return e.EncryptToSlice(), nil
}
