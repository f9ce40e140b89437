// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding the configuration path
// used by the shared library.
const EnvConfig = "PCMDECODER_CONFIG"

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Unknown fields are rejected and an empty document yields [Default].
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads the file named by [EnvConfig], or returns [Default] when
// the variable is unset or empty.
func LoadEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Pipeline.TargetRate < 0 {
		errs = append(errs, fmt.Errorf("pipeline.target_rate %d must be positive", cfg.Pipeline.TargetRate))
	}
	if s := cfg.Pipeline.Output; s != "" {
		if _, ok := parseSampleFormat(s); !ok {
			errs = append(errs, errUnknown("pipeline.output", s, "float32, int16"))
		}
	}
	if s := cfg.Pipeline.Mixdown; s != "" {
		if _, ok := parseMixOrder(s); !ok {
			errs = append(errs, errUnknown("pipeline.mixdown", s, "after, before"))
		}
	}

	if cfg.Log.Level != "" && !cfg.Log.Level.IsValid() {
		errs = append(errs, errUnknown("log.level", string(cfg.Log.Level), "debug, info, warn, error"))
	}
	if cfg.Log.Format != "" && !cfg.Log.Format.IsValid() {
		errs = append(errs, errUnknown("log.format", string(cfg.Log.Format), "text, json"))
	}

	return errors.Join(errs...)
}

func errUnknown(field, value, valid string) error {
	return fmt.Errorf("%s %q is invalid; valid values: %s", field, value, valid)
}
