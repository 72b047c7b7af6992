package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/fhilgers/goabcrypt/internal/config"
	"github.com/fhilgers/goabcrypt/internal/fileio"
	"github.com/fhilgers/goabcrypt/internal/passphrase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var Version = "dev"

const usage = `Usage: abcrypt [--config FILE] [--verbose] COMMAND [OPTIONS] [FILE]

Commands:
  encrypt, enc, e   Encrypt a file
  decrypt, dec, d   Decrypt a file
  info, i           Print the parameters of an encrypted file
  version           Print the version

FILE defaults to standard input; output goes to standard output unless -o is given.
`

type app struct {
	fs       afero.Fs
	io       *fileio.IO
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	terminal func() (passphrase.Terminal, func() error, error)
	log      *logrus.Logger
}

func newApp() *app {
	fs := afero.NewOsFs()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	return &app{
		fs:       fs,
		io:       fileio.New(fs, os.Stdin, os.Stdout),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: passphrase.OpenTerminal,
		log:      log,
	}
}

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	err := newApp().run(os.Args[1:])
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	default:
		fmt.Fprintf(os.Stderr, "abcrypt: %v\n", err)
		memguard.SafeExit(1)
	}
}

func (a *app) run(args []string) error {
	global := flag.NewFlagSet("abcrypt", flag.ContinueOnError)
	global.SetOutput(a.stderr)
	global.Usage = func() {
		fmt.Fprint(a.stderr, usage)
		global.PrintDefaults()
	}

	configPath := global.String("config", os.Getenv("ABCRYPT_CONFIG"), "read defaults from the YAML `file`")
	verbose := global.Bool("verbose", false, "log progress to standard error")

	if err := global.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(a.fs, *configPath)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if *verbose && level < logrus.InfoLevel {
		level = logrus.InfoLevel
	}
	a.log.SetLevel(level)

	if global.NArg() == 0 {
		global.Usage()
		return errors.New("no command given")
	}

	command, rest := global.Arg(0), global.Args()[1:]
	a.log.WithFields(logrus.Fields{
		"command": command,
		"config":  *configPath,
	}).Debug("starting")

	switch command {
	case "encrypt", "enc", "e":
		return a.encrypt(cfg, rest)
	case "decrypt", "dec", "d":
		return a.decrypt(cfg, rest)
	case "info", "information", "i":
		return a.info(rest)
	case "version":
		fmt.Fprintf(a.stdout, "abcrypt %s\n", Version)
		return nil
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
