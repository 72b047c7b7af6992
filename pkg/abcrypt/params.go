package abcrypt

import (
	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/constants"
	"github.com/fhilgers/goabcrypt/internal/header"
)

const (
	HeaderSize   = constants.HeaderSizeV1
	HeaderSizeV0 = constants.HeaderSizeV0
	TagSize      = constants.TagSize
)

type (
	Params        = argon2.Params
	Argon2Type    = argon2.Variant
	Argon2Version = argon2.Version
)

const (
	Argon2d  = argon2.Argon2d
	Argon2i  = argon2.Argon2i
	Argon2id = argon2.Argon2id

	Argon2V0x10 = argon2.V0x10
	Argon2V0x13 = argon2.V0x13
)

// DefaultParams returns Argon2id defaults of 19 MiB, two passes and one lane.
func DefaultParams() Params {
	return argon2.DefaultParams()
}

// NewParams returns validated cost parameters. memoryCost is in KiB.
func NewParams(memoryCost, timeCost, parallelism uint32) (p Params, err error) {
	p = Params{MemoryCost: memoryCost, TimeCost: timeCost, Parallelism: parallelism}
	if err = p.Validate(); err != nil {
		p = Params{}
	}

	return
}

// Argon2Context is the algorithm selection recorded in a header.
type Argon2Context struct {
	Variant Argon2Type    `json:"variant"`
	Version Argon2Version `json:"version"`
}

// Parameters is everything a header reveals without the passphrase. Argon2
// is nil for version 0 containers, which do not record it.
type Parameters struct {
	Version uint8 `json:"version"`
	Params
	Argon2 *Argon2Context `json:"argon2,omitempty"`
}

type options struct {
	allowV0 bool
}

type Option func(*options)

// WithoutLegacy rejects version 0 containers with UnsupportedVersionError.
func WithoutLegacy() Option {
	return func(o *options) {
		o.allowV0 = false
	}
}

func parse(container []byte, opts []Option) (header.Header, error) {
	o := options{allowV0: true}
	for _, opt := range opts {
		opt(&o)
	}

	return header.Parse(container, o.allowV0)
}

// ReadParams returns the cost parameters of container. The header MAC is not
// checked and the parameters are not validated.
func ReadParams(container []byte, opts ...Option) (Params, error) {
	h, err := parse(container, opts)
	if err != nil {
		return Params{}, err
	}

	return h.Params, nil
}

func ReadParameters(container []byte, opts ...Option) (p Parameters, err error) {
	h, err := parse(container, opts)
	if err != nil {
		return
	}

	p.Version = uint8(h.Version)
	p.Params = h.Params
	if h.Version != header.V0 {
		p.Argon2 = &Argon2Context{Variant: h.Variant, Version: h.Argon2Version}
	}

	return
}

// ReadArgon2Context returns the Argon2 variant and revision of container.
// Version 0 containers report Argon2id revision 0x13.
func ReadArgon2Context(container []byte, opts ...Option) (Argon2Context, error) {
	h, err := parse(container, opts)
	if err != nil {
		return Argon2Context{}, err
	}

	return Argon2Context{Variant: h.Variant, Version: h.Argon2Version}, nil
}
