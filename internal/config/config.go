package config

import (
	"fmt"

	"github.com/fhilgers/goabcrypt/internal/argon2"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const DefaultPassphraseEnv = "ABCRYPT_PASSPHRASE"

// Config holds the CLI defaults. Flags given on the command line take
// precedence over it.
type Config struct {
	Argon2        Argon2Config `yaml:"argon2"`
	PassphraseEnv string       `yaml:"passphrase_env" envconfig:"ABCRYPT_PASSPHRASE_ENV"`
	LogLevel      string       `yaml:"log_level" envconfig:"ABCRYPT_LOG_LEVEL"`
}

type Argon2Config struct {
	MemoryCost  uint32 `yaml:"memory_cost" envconfig:"ABCRYPT_MEMORY_COST"`
	TimeCost    uint32 `yaml:"time_cost" envconfig:"ABCRYPT_TIME_COST"`
	Parallelism uint32 `yaml:"parallelism" envconfig:"ABCRYPT_PARALLELISM"`
	Variant     string `yaml:"variant" envconfig:"ABCRYPT_ARGON2_TYPE"`
	Version     string `yaml:"version" envconfig:"ABCRYPT_ARGON2_VERSION"`
}

func Default() *Config {
	p := argon2.DefaultParams()

	return &Config{
		Argon2: Argon2Config{
			MemoryCost:  p.MemoryCost,
			TimeCost:    p.TimeCost,
			Parallelism: p.Parallelism,
			Variant:     argon2.Argon2id.String(),
			Version:     argon2.V0x13.String(),
		},
		PassphraseEnv: DefaultPassphraseEnv,
		LogLevel:      logrus.WarnLevel.String(),
	}
}

// Load starts from Default, applies the YAML file at path if path is not
// empty and then the environment.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := argon2.ParseVariant(c.Argon2.Variant); err != nil {
		return err
	}
	if _, err := argon2.ParseVersion(c.Argon2.Version); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PassphraseEnv == "" {
		return fmt.Errorf("passphrase_env must not be empty")
	}
	return nil
}

func (c *Config) Params() argon2.Params {
	return argon2.Params{
		MemoryCost:  c.Argon2.MemoryCost,
		TimeCost:    c.Argon2.TimeCost,
		Parallelism: c.Argon2.Parallelism,
	}
}

// Context returns the Argon2 variant and revision. It only fails on a
// config that did not pass Validate.
func (c *Config) Context() (variant argon2.Variant, version argon2.Version, err error) {
	if variant, err = argon2.ParseVariant(c.Argon2.Variant); err != nil {
		return
	}

	version, err = argon2.ParseVersion(c.Argon2.Version)

	return
}
