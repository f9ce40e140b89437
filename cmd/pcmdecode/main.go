// SPDX-License-Identifier: EPL-2.0

// Command pcmdecode decodes audio files or URLs into mono PCM at a fixed
// sample rate and writes them as WAV or raw little-endian samples.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/pcmdecoder"
	"github.com/ik5/pcmdecoder/codec"
	"github.com/ik5/pcmdecoder/internal/config"
)

// version is set via ldflags at build time
var version = "dev"

type cli struct {
	Inputs []string `arg:"" name:"input" help:"Input files or http(s) URLs."`

	Config  string           `short:"c" help:"YAML configuration file." type:"existingfile"`
	Rate    int              `short:"r" help:"Target sample rate in Hz (overrides the configuration)."`
	Output  string           `help:"Sample format: float32 or int16 (overrides the configuration)."`
	Mixdown string           `help:"Mix channels 'after' or 'before' resampling (overrides the configuration)."`
	Format  string           `short:"f" help:"Output container: wav or raw." enum:"wav,raw" default:"wav"`
	OutDir  string           `short:"o" name:"out-dir" help:"Directory for output files, or - for stdout with a single input." default:"."`
	Jobs    int              `short:"j" help:"Inputs decoded concurrently." default:"4"`
	Timeout time.Duration    `help:"Timeout for fetching URLs." default:"30s"`
	Version kong.VersionFlag `help:"Show version information."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pcmdecode"),
		kong.Description("Decode audio into mono PCM at a fixed sample rate."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.FatalIfErrorf(c.run(ctx))
}

func (c *cli) run(ctx context.Context) error {
	fileCfg := config.Default()
	if c.Config != "" {
		var err error
		if fileCfg, err = config.Load(c.Config); err != nil {
			return err
		}
	}
	log := config.NewLogger(fileCfg.Log)

	cfg, err := c.pipeline(fileCfg)
	if err != nil {
		return err
	}

	if c.OutDir == "-" && len(c.Inputs) != 1 {
		return errors.New("stdout output needs exactly one input")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Jobs, 1))
	for _, in := range c.Inputs {
		g.Go(func() error {
			if err := c.convert(ctx, cfg, log, in); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// pipeline applies the command-line overrides to the file configuration.
func (c *cli) pipeline(fileCfg *config.Config) (pcmdecoder.Config, error) {
	pc := fileCfg.Pipeline
	if c.Rate != 0 {
		pc.TargetRate = c.Rate
	}
	if c.Output != "" {
		pc.Output = c.Output
	}
	if c.Mixdown != "" {
		pc.Mixdown = c.Mixdown
	}
	merged := config.Config{Pipeline: pc, Log: fileCfg.Log}
	if err := config.Validate(&merged); err != nil {
		return pcmdecoder.Config{}, err
	}
	return merged.SessionConfig()
}

func (c *cli) convert(ctx context.Context, cfg pcmdecoder.Config, log *slog.Logger, in string) error {
	s, err := pcmdecoder.New(cfg, pcmdecoder.WithLogger(log.With(slog.String("input", in))))
	if err != nil {
		return err
	}

	data, hint, err := c.load(ctx, in)
	if err != nil {
		return err
	}
	if err := s.DecodeHint(data, hint); err != nil {
		return err
	}

	buf, err := s.Buffer()
	if err != nil {
		return err
	}
	if c.OutDir == "-" {
		return writeOutput(os.Stdout, c.Format, buf)
	}

	out := outputPath(c.OutDir, in, c.Format)
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := writeOutput(f, c.Format, buf); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info("wrote output",
		slog.String("input", in),
		slog.String("output", out),
		slog.Int("samples", buf.Len()),
		slog.String("sample_format", buf.Format.String()),
	)
	return nil
}

func (c *cli) load(ctx context.Context, in string) ([]byte, codec.Hint, error) {
	if isURL(in) {
		ctx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()
		return fetch(ctx, in)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return nil, codec.Hint{}, err
	}
	return data, codec.Hint{Extension: filepath.Ext(in)}, nil
}

// outputPath names the output after the input's base name.
func outputPath(dir, in, format string) string {
	base := filepath.Base(in)
	if isURL(in) {
		base = path.Base(urlPath(in))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "output"
	}

	ext := ".wav"
	if format == "raw" {
		ext = ".pcm"
	}
	return filepath.Join(dir, base+ext)
}
