package header

import (
	"errors"
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/constants"
)

var (
	ErrInputTooShort      = fmt.Errorf("encrypted data is shorter than %d bytes", constants.MinContainerSize)
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidHeaderMAC   = errors.New("invalid header MAC")
)

// UnknownVersionError reports a version newer than this implementation
// understands.
type UnknownVersionError struct {
	Version uint8
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown version number `%d`", e.Version)
}

// UnsupportedVersionError reports a known version that the caller chose not
// to accept.
type UnsupportedVersionError struct {
	Version uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version number `%d`", e.Version)
}
