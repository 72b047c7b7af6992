package abcrypt

import (
	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/header"
	"github.com/fhilgers/goabcrypt/internal/payload"
)

var (
	ErrInputTooShort        = header.ErrInputTooShort
	ErrInvalidMagicNumber   = header.ErrInvalidMagicNumber
	ErrInvalidHeaderMAC     = header.ErrInvalidHeaderMAC
	ErrInvalidCiphertextMAC = payload.ErrInvalidCiphertextMAC

	// ErrInvalidParams wraps one of the more specific causes below.
	ErrInvalidParams   = argon2.ErrInvalidParams
	ErrMemoryTooLittle = argon2.ErrMemoryTooLittle
	ErrTimeTooSmall    = argon2.ErrTimeTooSmall
	ErrThreadsTooFew   = argon2.ErrThreadsTooFew
	ErrThreadsTooMany  = argon2.ErrThreadsTooMany
)

type (
	UnknownVersionError       = header.UnknownVersionError
	UnsupportedVersionError   = header.UnsupportedVersionError
	InvalidArgon2TypeError    = argon2.InvalidVariantError
	InvalidArgon2VersionError = argon2.InvalidVersionError
)
