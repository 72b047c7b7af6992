// Package abcrypt encrypts and decrypts data in the abcrypt container format.
//
// A container is a header carrying the Argon2 parameters, salt, nonce and a
// keyed BLAKE2b-512 MAC, followed by the XChaCha20-Poly1305 ciphertext and
// its 16-byte tag. Everything needed for decryption except the passphrase is
// stored in the header.
package abcrypt
