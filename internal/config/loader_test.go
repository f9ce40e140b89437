// SPDX-License-Identifier: EPL-2.0

package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ik5/pcmdecoder"
	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/internal/config"
)

func TestLoadFromReader_Full(t *testing.T) {
	t.Parallel()
	yaml := `
pipeline:
  target_rate: 16000
  output: int16
  mixdown: before
log:
  level: debug
  format: json
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}

	p, err := cfg.SessionConfig()
	if err != nil {
		t.Fatalf("SessionConfig() error = %v", err)
	}
	want := pcmdecoder.Config{TargetRate: 16000, Output: audio.Int16, Mixdown: audio.MixBeforeResample}
	if p != want {
		t.Errorf("SessionConfig() = %+v, want %+v", p, want)
	}
	if cfg.Log.Level != config.LogDebug || cfg.Log.Format != config.LogJSON {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
}

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "pipeline:\n  output: int16\n"} {
		cfg, err := config.LoadFromReader(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("LoadFromReader(%q) error = %v", doc, err)
		}
		p, err := cfg.SessionConfig()
		if err != nil {
			t.Fatalf("SessionConfig() error = %v", err)
		}
		if p.TargetRate != pcmdecoder.DefaultTargetRate || p.Mixdown != audio.MixAfterResample {
			t.Errorf("SessionConfig() = %+v, want default rate and mixdown", p)
		}
		if cfg.Log.Level != config.LogInfo {
			t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
		}
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()
	yaml := `
pipeline:
  target_rate: 8000
  chunk_size: 1024
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
	if !strings.Contains(err.Error(), "chunk_size") {
		t.Errorf("error should mention chunk_size, got: %v", err)
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	t.Parallel()
	yaml := `
pipeline:
  target_rate: -1
  output: int24
  mixdown: sideways
log:
  level: loud
  format: xml
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, field := range []string{"target_rate", "pipeline.output", "pipeline.mixdown", "log.level", "log.format"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_SessionConfigInvalid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Pipeline.TargetRate = -5
	if _, err := cfg.SessionConfig(); !errors.Is(err, pcmdecoder.ErrInvalidConfig) {
		t.Errorf("SessionConfig() error = %v, want %v", err, pcmdecoder.ErrInvalidConfig)
	}

	cfg = config.Default()
	cfg.Pipeline.Output = "f64"
	if _, err := cfg.SessionConfig(); err == nil {
		t.Error("SessionConfig() error = nil for unknown output")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pcmdecoder.yaml")
	if err := os.WriteFile(path, []byte("pipeline:\n  target_rate: 22050\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pipeline.TargetRate != 22050 {
		t.Errorf("TargetRate = %d, want 22050", cfg.Pipeline.TargetRate)
	}

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("pipeline:\n  mixdown: before\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(config.EnvConfig, path)
	cfg, err := config.LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if cfg.Pipeline.Mixdown != "before" {
		t.Errorf("Mixdown = %q, want before", cfg.Pipeline.Mixdown)
	}

	t.Setenv(config.EnvConfig, "")
	cfg, err = config.LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() unset error = %v", err)
	}
	if cfg.Pipeline.TargetRate != pcmdecoder.DefaultTargetRate {
		t.Errorf("TargetRate = %d, want default", cfg.Pipeline.TargetRate)
	}
}
