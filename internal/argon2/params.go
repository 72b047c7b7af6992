package argon2

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fhilgers/goabcrypt/internal/constants"
)

var (
	ErrInvalidParams   = errors.New("invalid Argon2 parameters")
	ErrMemoryTooLittle = errors.New("memory cost is too small")
	ErrTimeTooSmall    = errors.New("time cost is too small")
	ErrThreadsTooFew   = errors.New("not enough lanes")
	ErrThreadsTooMany  = errors.New("too many lanes")
)

// Variant selects the Argon2 algorithm. The numeric values are the ones
// stored in the header and fed into the initial hash.
type Variant uint32

const (
	Argon2d Variant = iota
	Argon2i
	Argon2id
)

func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("Variant(%d)", uint32(v))
	}
}

func (v Variant) Valid() bool {
	return v <= Argon2id
}

// Version is the internal revision of the Argon2 algorithm.
type Version uint32

const (
	V0x10 Version = 0x10
	V0x13 Version = 0x13
)

func (v Version) String() string {
	return fmt.Sprintf("%#x", uint32(v))
}

func (v Version) Valid() bool {
	return v == V0x10 || v == V0x13
}

type InvalidVariantError struct {
	Value uint32
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("invalid Argon2 type `%d`", e.Value)
}

type InvalidVersionError struct {
	Value uint32
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid Argon2 version `%#x`", e.Value)
}

func VariantFromUint32(v uint32) (Variant, error) {
	if variant := Variant(v); variant.Valid() {
		return variant, nil
	}
	return 0, &InvalidVariantError{Value: v}
}

func VersionFromUint32(v uint32) (Version, error) {
	if version := Version(v); version.Valid() {
		return version, nil
	}
	return 0, &InvalidVersionError{Value: v}
}

// ParseVariant accepts the lower-case algorithm names, e.g. "argon2id".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "argon2d":
		return Argon2d, nil
	case "argon2i":
		return Argon2i, nil
	case "argon2id":
		return Argon2id, nil
	}
	return 0, fmt.Errorf("unknown Argon2 type %q", s)
}

// ParseVersion accepts "0x10", "0x13" and their decimal forms.
func ParseVersion(s string) (Version, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown Argon2 version %q", s)
	}
	return VersionFromUint32(uint32(n))
}

// Params are the cost parameters of a derivation.
type Params struct {
	MemoryCost  uint32 `json:"memoryCost" yaml:"memory_cost"`
	TimeCost    uint32 `json:"timeCost" yaml:"time_cost"`
	Parallelism uint32 `json:"parallelism" yaml:"parallelism"`
}

func DefaultParams() Params {
	return Params{
		MemoryCost:  constants.DefaultMemoryCost,
		TimeCost:    constants.DefaultTimeCost,
		Parallelism: constants.DefaultParallelism,
	}
}

// Validate checks the constraints Argon2 places on its cost parameters.
// The memory checks run first so that a bogus lane count paired with a
// small memory cost is reported as too little memory.
func (p Params) Validate() error {
	var cause error
	switch {
	case p.MemoryCost < constants.Argon2MinMemory:
		cause = ErrMemoryTooLittle
	case uint64(p.MemoryCost) < uint64(p.Parallelism)*constants.Argon2MemoryFactor:
		cause = ErrMemoryTooLittle
	case p.TimeCost < constants.Argon2MinTime:
		cause = ErrTimeTooSmall
	case p.Parallelism < constants.Argon2MinLanes:
		cause = ErrThreadsTooFew
	case p.Parallelism > constants.Argon2MaxLanes:
		cause = ErrThreadsTooMany
	default:
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, cause)
}
