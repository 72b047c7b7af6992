package passphrase

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

var ErrMismatch = errors.New("passphrases do not match")

// Terminal reads a line without echoing it.
type Terminal interface {
	ReadPassword() ([]byte, error)
}

type tty struct {
	fd int
}

func (t tty) ReadPassword() ([]byte, error) {
	return term.ReadPassword(t.fd)
}

// OpenTerminal returns stdin if it is a terminal and /dev/tty otherwise, so
// that data can still be piped in while the passphrase is typed.
func OpenTerminal() (t Terminal, closeFn func() error, err error) {
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		return tty{fd: fd}, func() error { return nil }, nil
	}

	f, err := os.Open("/dev/tty")
	if err != nil {
		return nil, nil, fmt.Errorf("no terminal to read the passphrase from: %w", err)
	}

	return tty{fd: int(f.Fd())}, f.Close, nil
}

// Prompt asks for the passphrase on t, writing prompts to w. With confirm
// set the passphrase has to be typed twice.
func Prompt(t Terminal, w io.Writer, confirm bool) (*memguard.LockedBuffer, error) {
	fmt.Fprint(w, "Enter passphrase: ")
	p, err := t.ReadPassword()
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}

	if confirm {
		fmt.Fprint(w, "Confirm passphrase: ")
		again, err := t.ReadPassword()
		fmt.Fprintln(w)
		if err != nil {
			memguard.WipeBytes(p)
			return nil, fmt.Errorf("could not read passphrase: %w", err)
		}

		match := bytes.Equal(p, again)
		memguard.WipeBytes(again)
		if !match {
			memguard.WipeBytes(p)
			return nil, ErrMismatch
		}
	}

	return memguard.NewBufferFromBytes(p), nil
}

// FromReader reads up to the first newline. A trailing "\r" is dropped as
// well. r is read one byte at a time so nothing past the line is consumed.
func FromReader(r io.Reader) (*memguard.LockedBuffer, error) {
	line := make([]byte, 0, 256)
	var b [1]byte

	for {
		n, err := r.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				break
			}
			if len(line) == cap(line) {
				grown := make([]byte, len(line), 2*cap(line))
				copy(grown, line)
				memguard.WipeBytes(line)
				line = grown
			}
			line = append(line, b[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			memguard.WipeBytes(line)
			return nil, fmt.Errorf("could not read passphrase: %w", err)
		}
	}

	line = bytes.TrimSuffix(line, []byte{'\r'})

	return memguard.NewBufferFromBytes(line), nil
}

func FromEnv(name string) (*memguard.LockedBuffer, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil, fmt.Errorf("could not read passphrase from environment variable %s: not set", name)
	}

	return memguard.NewBufferFromBytes([]byte(value)), nil
}

func FromFile(fs afero.Fs, path string) (*memguard.LockedBuffer, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	return FromReader(f)
}
