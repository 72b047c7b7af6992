package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fhilgers/goabcrypt/pkg/abcrypt"
)

type infoOutput struct {
	Version       uint8  `json:"version"`
	MemoryCost    uint32 `json:"memoryCost"`
	TimeCost      uint32 `json:"timeCost"`
	Parallelism   uint32 `json:"parallelism"`
	Argon2Type    string `json:"argon2Type"`
	Argon2Version string `json:"argon2Version"`
}

func (a *app) info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var asJSON bool
	fs.BoolVar(&asJSON, "j", false, "print the parameters as JSON")
	fs.BoolVar(&asJSON, "json", false, "print the parameters as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	input, err := singleInput(fs)
	if err != nil {
		return err
	}

	container, err := a.io.Read(input)
	if err != nil {
		return err
	}

	p, err := abcrypt.ReadParameters(container)
	if err != nil {
		return fmt.Errorf("data is not a valid abcrypt encrypted file: %w", err)
	}
	ctx, err := abcrypt.ReadArgon2Context(container)
	if err != nil {
		return fmt.Errorf("data is not a valid abcrypt encrypted file: %w", err)
	}

	out := infoOutput{
		Version:       p.Version,
		MemoryCost:    p.MemoryCost,
		TimeCost:      p.TimeCost,
		Parallelism:   p.Parallelism,
		Argon2Type:    ctx.Variant.String(),
		Argon2Version: ctx.Version.String(),
	}

	if asJSON {
		enc := json.NewEncoder(a.stdout)
		return enc.Encode(out)
	}

	fmt.Fprintf(a.stdout, "Version:        %d\n", out.Version)
	fmt.Fprintf(a.stdout, "Argon2 type:    %s\n", out.Argon2Type)
	fmt.Fprintf(a.stdout, "Argon2 version: %s\n", out.Argon2Version)
	fmt.Fprintf(a.stdout, "Memory cost:    %d KiB (%s)\n", out.MemoryCost, humanize.IBytes(uint64(out.MemoryCost)*1024))
	fmt.Fprintf(a.stdout, "Time cost:      %d\n", out.TimeCost)
	fmt.Fprintf(a.stdout, "Parallelism:    %d\n", out.Parallelism)

	return nil
}
