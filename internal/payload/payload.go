package payload

import (
	"crypto/cipher"
	"errors"

	"github.com/fhilgers/goabcrypt/internal/constants"
	"golang.org/x/crypto/chacha20poly1305"
)

var ErrInvalidCiphertextMAC = errors.New("invalid ciphertext MAC")

// Cipher seals the container body with XChaCha20-Poly1305 and no
// associated data.
type Cipher struct {
	aead cipher.AEAD
}

func New(key []byte) (c *Cipher, err error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return
	}

	c = &Cipher{aead: aead}

	return
}

// Seal appends ciphertext and tag to dst.
func (c *Cipher) Seal(dst, nonce, plaintext []byte) []byte {
	return c.aead.Seal(dst, nonce, plaintext, nil)
}

// Open appends the plaintext to dst. sealed is ciphertext followed by the
// tag.
func (c *Cipher) Open(dst, nonce, sealed []byte) ([]byte, error) {
	if len(sealed) < constants.TagSize {
		return nil, ErrInvalidCiphertextMAC
	}

	out, err := c.aead.Open(dst, nonce, sealed, nil)
	if err != nil {
		return nil, ErrInvalidCiphertextMAC
	}

	return out, nil
}
