package abcrypt

import (
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/constants"
	"github.com/fhilgers/goabcrypt/internal/derivedkey"
	"github.com/fhilgers/goabcrypt/internal/header"
	"github.com/fhilgers/goabcrypt/internal/payload"
)

// Decryptor is a container whose header has been authenticated. Only the
// payload tag remains to be checked.
type Decryptor struct {
	header header.Header
	cipher *payload.Cipher
	sealed []byte
}

// NewDecryptor parses container, derives the keys from the parameters in its
// header and verifies the header MAC. A wrong passphrase is reported as
// ErrInvalidHeaderMAC.
func NewDecryptor(container, passphrase []byte, opts ...Option) (*Decryptor, error) {
	h, err := parse(container, opts)
	if err != nil {
		return nil, err
	}

	k, err := derivedkey.Derive(passphrase, h.Salt, h.Variant, h.Argon2Version, h.Params)
	if err != nil {
		return nil, err
	}
	defer k.Wipe()

	if err = h.Verify(k.MacKey); err != nil {
		return nil, err
	}

	c, err := payload.New(k.EncryptKey)
	if err != nil {
		return nil, err
	}

	return &Decryptor{header: h, cipher: c, sealed: container[h.Version.Size():]}, nil
}

// OutLen is the length of the plaintext.
func (d *Decryptor) OutLen() int {
	return len(d.sealed) - constants.TagSize
}

// Decrypt writes the plaintext into buf, which must be exactly OutLen bytes
// long. buf is zeroed if the payload tag does not match.
func (d *Decryptor) Decrypt(buf []byte) error {
	if len(buf) != d.OutLen() {
		panic(fmt.Sprintf("abcrypt: output buffer is %d bytes, want %d", len(buf), d.OutLen()))
	}

	if _, err := d.cipher.Open(buf[:0], d.header.Nonce, d.sealed); err != nil {
		clear(buf)
		return err
	}

	return nil
}

func (d *Decryptor) DecryptToSlice() ([]byte, error) {
	buf := make([]byte, d.OutLen())
	if err := d.Decrypt(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func Decrypt(container, passphrase []byte, opts ...Option) ([]byte, error) {
	d, err := NewDecryptor(container, passphrase, opts...)
	if err != nil {
		return nil, err
	}

	return d.DecryptToSlice()
}
