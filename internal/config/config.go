// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration shared by the CLI and the
// shared library.
package config

import (
	"github.com/ik5/pcmdecoder"
	"github.com/ik5/pcmdecoder/audio"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// IsValid reports whether f is a recognised log format.
func (f LogFormat) IsValid() bool { return f == LogText || f == LogJSON }

// Config is the root of the configuration file.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Log      LogConfig      `yaml:"log"`
}

// PipelineConfig mirrors pcmdecoder.Config with textual enums.
type PipelineConfig struct {
	// TargetRate is the output sample rate in Hz. Zero selects 48000.
	TargetRate int `yaml:"target_rate"`

	// Output is "float32" or "int16".
	Output string `yaml:"output"`

	// Mixdown is "after" or "before" resampling.
	Mixdown string `yaml:"mixdown"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			TargetRate: pcmdecoder.DefaultTargetRate,
			Output:     audio.Float32.String(),
			Mixdown:    audio.MixAfterResample.String(),
		},
		Log: LogConfig{Level: LogInfo, Format: LogText},
	}
}

// SessionConfig converts the pipeline section. Empty fields take the values of
// pcmdecoder.DefaultConfig.
func (c *Config) SessionConfig() (pcmdecoder.Config, error) {
	out := pcmdecoder.DefaultConfig()
	if c.Pipeline.TargetRate != 0 {
		out.TargetRate = c.Pipeline.TargetRate
	}

	if c.Pipeline.Output != "" {
		f, ok := parseSampleFormat(c.Pipeline.Output)
		if !ok {
			return pcmdecoder.Config{}, errUnknown("pipeline.output", c.Pipeline.Output, "float32, int16")
		}
		out.Output = f
	}

	if c.Pipeline.Mixdown != "" {
		m, ok := parseMixOrder(c.Pipeline.Mixdown)
		if !ok {
			return pcmdecoder.Config{}, errUnknown("pipeline.mixdown", c.Pipeline.Mixdown, "after, before")
		}
		out.Mixdown = m
	}

	if err := out.Validate(); err != nil {
		return pcmdecoder.Config{}, err
	}
	return out, nil
}

func parseSampleFormat(s string) (audio.SampleFormat, bool) {
	for _, f := range []audio.SampleFormat{audio.Float32, audio.Int16} {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

func parseMixOrder(s string) (audio.MixOrder, bool) {
	for _, m := range []audio.MixOrder{audio.MixAfterResample, audio.MixBeforeResample} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}
