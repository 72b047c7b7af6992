package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/config"
	"github.com/fhilgers/goabcrypt/pkg/abcrypt"
	"github.com/sirupsen/logrus"
)

func (a *app) decrypt(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("decrypt", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var (
		output  string
		verbose bool
		pf      passphraseFlags
	)

	fs.StringVar(&output, "o", "", "write the decrypted data to `file`")
	fs.StringVar(&output, "output", "", "write the decrypted data to `file`")
	fs.BoolVar(&verbose, "v", false, "print the parameters used")
	fs.BoolVar(&verbose, "verbose", false, "print the parameters used")
	pf.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := singleInput(fs)
	if err != nil {
		return err
	}
	if err := pf.validate(input); err != nil {
		return err
	}

	container, err := a.io.Read(input)
	if err != nil {
		return err
	}

	pass, err := a.readPassphrase(cfg, pf, false)
	if err != nil {
		return err
	}
	defer pass.Destroy()

	params, err := abcrypt.ReadParams(container)
	if err != nil {
		return fmt.Errorf("data is not a valid abcrypt encrypted file: %w", err)
	}
	if verbose {
		a.displayParams(params)
	}

	a.log.WithFields(logrus.Fields{
		"memoryCost":  params.MemoryCost,
		"timeCost":    params.TimeCost,
		"parallelism": params.Parallelism,
		"bytes":       len(container),
	}).Info("decrypting")

	d, err := abcrypt.NewDecryptor(container, pass.Bytes())
	switch {
	case errors.Is(err, abcrypt.ErrInvalidHeaderMAC):
		return fmt.Errorf("passphrase is incorrect: %w", err)
	case err != nil:
		return fmt.Errorf("the header in the encrypted data is invalid: %w", err)
	}

	plaintext, err := d.DecryptToSlice()
	if err != nil {
		return fmt.Errorf("the encrypted data is corrupted: %w", err)
	}

	return a.io.Write(output, plaintext, 0o600)
}
