package header

import (
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/constants"
)

// Version is the container format version stored after the magic number.
type Version uint8

const (
	V0 Version = constants.VersionV0
	V1 Version = constants.VersionV1

	Latest = V1
)

// layout holds the field offsets of one header version. context is -1 for
// versions that do not record the Argon2 variant and revision.
type layout struct {
	size    int
	context int
	params  int
	salt    int
	nonce   int
	mac     int
}

func newLayout(context bool) layout {
	l := layout{context: -1}
	offset := constants.MagicSize + 1
	if context {
		l.context = offset
		offset += constants.ContextSize
	}
	l.params = offset
	l.salt = l.params + constants.ParamsSize
	l.nonce = l.salt + constants.SaltSize
	l.mac = l.nonce + constants.NonceSize
	l.size = l.mac + constants.HeaderMacSize
	return l
}

var layouts = [...]layout{
	V0: newLayout(false),
	V1: newLayout(true),
}

func (v Version) layout() layout {
	return layouts[v]
}

func (v Version) Known() bool {
	return v <= Latest
}

// Size is the header length of v in bytes.
func (v Version) Size() int {
	return v.layout().size
}

// MacOffset is the offset of the header MAC, which is also the length of the
// authenticated prefix.
func (v Version) MacOffset() int {
	return v.layout().mac
}

func (v Version) String() string {
	return fmt.Sprintf("v%d", uint8(v))
}
