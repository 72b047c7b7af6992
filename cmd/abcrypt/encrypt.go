package main

import (
	"flag"
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/fhilgers/goabcrypt/internal/config"
	"github.com/fhilgers/goabcrypt/pkg/abcrypt"
	"github.com/sirupsen/logrus"
)

func (a *app) encrypt(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("encrypt", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	defaultVariant, defaultVersion, err := cfg.Context()
	if err != nil {
		return err
	}

	var (
		output      string
		verbose     bool
		memory      = memorySize(cfg.Argon2.MemoryCost)
		timeCost    = uint32Value(cfg.Argon2.TimeCost)
		parallelism = uint32Value(cfg.Argon2.Parallelism)
		variant     = variantValue(defaultVariant)
		version     = versionValue(defaultVersion)
		pf          passphraseFlags
	)

	fs.StringVar(&output, "o", "", "write the encrypted data to `file`")
	fs.StringVar(&output, "output", "", "write the encrypted data to `file`")
	fs.Var(&memory, "m", "Argon2 memory `size` in bytes, e.g. 64MiB")
	fs.Var(&memory, "memory-cost", "Argon2 memory `size` in bytes, e.g. 64MiB")
	fs.Var(&timeCost, "t", "Argon2 number of `iterations`")
	fs.Var(&timeCost, "time-cost", "Argon2 number of `iterations`")
	fs.Var(&parallelism, "p", "Argon2 degree of `parallelism`")
	fs.Var(&parallelism, "parallelism", "Argon2 degree of `parallelism`")
	fs.Var(&variant, "argon2-type", "Argon2 `type`: argon2d, argon2i or argon2id")
	fs.Var(&version, "argon2-version", "Argon2 `version`: 0x10 or 0x13")
	fs.BoolVar(&verbose, "v", false, "print the parameters used")
	fs.BoolVar(&verbose, "verbose", false, "print the parameters used")
	pf.register(fs)
	pf.registerTTYOnce(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := singleInput(fs)
	if err != nil {
		return err
	}

	params, err := abcrypt.NewParams(uint32(memory), uint32(timeCost), uint32(parallelism))
	if err != nil {
		return err
	}

	if err := pf.validate(input); err != nil {
		return err
	}

	plaintext, err := a.io.Read(input)
	if err != nil {
		return err
	}

	pass, err := a.readPassphrase(cfg, pf, true)
	if err != nil {
		return err
	}
	defer pass.Destroy()

	if verbose {
		a.displayParams(params)
	}

	a.log.WithFields(logrus.Fields{
		"memoryCost":    params.MemoryCost,
		"timeCost":      params.TimeCost,
		"parallelism":   params.Parallelism,
		"argon2Type":    argon2.Variant(variant),
		"argon2Version": argon2.Version(version),
		"bytes":         len(plaintext),
	}).Info("encrypting")

	container, err := abcrypt.EncryptWithContext(plaintext, pass.Bytes(), argon2.Variant(variant), argon2.Version(version), params)
	if err != nil {
		return err
	}

	return a.io.Write(output, container, 0o644)
}

func (a *app) displayParams(p abcrypt.Params) {
	fmt.Fprintf(a.stderr, "Parameters used: memoryCost = %d; timeCost = %d; parallelism = %d;\n",
		p.MemoryCost, p.TimeCost, p.Parallelism)
}
