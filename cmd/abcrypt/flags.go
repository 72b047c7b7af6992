package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strconv"

	"github.com/awnumar/memguard"
	"github.com/dustin/go-humanize"
	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/config"
	"github.com/fhilgers/goabcrypt/internal/constants"
	"github.com/fhilgers/goabcrypt/internal/fileio"
	"github.com/fhilgers/goabcrypt/internal/passphrase"
)

// memorySize is a memory cost in KiB that is given on the command line in
// bytes, e.g. "64 MiB" or "19922944".
type memorySize uint32

func (m *memorySize) String() string {
	return humanize.IBytes(uint64(*m) * 1024)
}

func (m *memorySize) Set(s string) error {
	b, err := humanize.ParseBytes(s)
	if err != nil {
		return err
	}

	kib := b / 1024
	if kib < constants.Argon2MinMemory || kib > math.MaxUint32 {
		return fmt.Errorf("%s is not in %s..=%s", humanize.IBytes(b),
			humanize.IBytes(constants.Argon2MinMemory*1024), humanize.IBytes(math.MaxUint32*1024))
	}

	*m = memorySize(kib)

	return nil
}

type uint32Value uint32

func (u *uint32Value) String() string {
	return strconv.FormatUint(uint64(*u), 10)
}

func (u *uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}

	*u = uint32Value(n)

	return nil
}

type variantValue argon2.Variant

func (v *variantValue) String() string {
	return argon2.Variant(*v).String()
}

func (v *variantValue) Set(s string) error {
	variant, err := argon2.ParseVariant(s)
	if err != nil {
		return err
	}

	*v = variantValue(variant)

	return nil
}

type versionValue argon2.Version

func (v *versionValue) String() string {
	return argon2.Version(*v).String()
}

func (v *versionValue) Set(s string) error {
	version, err := argon2.ParseVersion(s)
	if err != nil {
		return err
	}

	*v = versionValue(version)

	return nil
}

type passphraseFlags struct {
	stdin   bool
	env     string
	file    string
	ttyOnce bool
}

func (p *passphraseFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&p.stdin, "passphrase-from-stdin", false, "read the passphrase from the first line of standard input")
	fs.StringVar(&p.env, "passphrase-from-env", "", "read the passphrase from the environment `variable`")
	fs.StringVar(&p.file, "passphrase-from-file", "", "read the passphrase from the first line of `file`")
}

// registerTTYOnce adds the encrypt-only source that prompts without asking
// for confirmation.
func (p *passphraseFlags) registerTTYOnce(fs *flag.FlagSet) {
	fs.BoolVar(&p.ttyOnce, "passphrase-from-tty-once", false, "read the passphrase from the terminal without confirmation")
}

// validate runs before any input is read so that a conflict does not drain
// standard input.
func (p passphraseFlags) validate(input string) error {
	given := 0
	for _, set := range []bool{p.stdin, p.env != "", p.file != "", p.ttyOnce} {
		if set {
			given++
		}
	}
	if given > 1 {
		return errors.New("only one passphrase source may be given")
	}

	if p.stdin && fileio.IsStdio(input) {
		return errors.New("cannot read both passphrase and input data from standard input")
	}

	return nil
}

// readPassphrase picks the passphrase source. Without flags the variable
// named by the config is used when it is set and the terminal otherwise.
func (a *app) readPassphrase(cfg *config.Config, p passphraseFlags, confirm bool) (*memguard.LockedBuffer, error) {
	switch {
	case p.stdin:
		return passphrase.FromReader(a.stdin)
	case p.env != "":
		return passphrase.FromEnv(p.env)
	case p.file != "":
		return passphrase.FromFile(a.fs, p.file)
	case p.ttyOnce:
		return a.promptPassphrase(false)
	}

	if buf, err := passphrase.FromEnv(cfg.PassphraseEnv); err == nil {
		a.log.WithField("variable", cfg.PassphraseEnv).Debug("using passphrase from environment")
		return buf, nil
	}

	return a.promptPassphrase(confirm)
}

func (a *app) promptPassphrase(confirm bool) (*memguard.LockedBuffer, error) {
	t, closeTerminal, err := a.terminal()
	if err != nil {
		return nil, err
	}
	defer closeTerminal()

	return passphrase.Prompt(t, a.stderr, confirm)
}

func singleInput(fs *flag.FlagSet) (string, error) {
	if fs.NArg() > 1 {
		return "", fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	return fs.Arg(0), nil
}
