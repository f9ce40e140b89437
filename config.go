// SPDX-License-Identifier: EPL-2.0

package pcmdecoder

import (
	"errors"
	"fmt"

	"github.com/ik5/pcmdecoder/audio"
)

// DefaultTargetRate is the output sample rate of DefaultConfig.
const DefaultTargetRate = 48000

// Config selects the pipeline variant. It is fixed for the lifetime of a
// Session.
type Config struct {
	// TargetRate is the output sample rate in Hz.
	TargetRate int
	// Output is the sample representation of the cached buffer.
	Output audio.SampleFormat
	// Mixdown places the channel mixdown after (multi-channel streaming
	// resample) or before (single-shot mono resample) resampling.
	Mixdown audio.MixOrder
}

// DefaultConfig returns 48 kHz float32 output mixed after resampling.
func DefaultConfig() Config {
	return Config{
		TargetRate: DefaultTargetRate,
		Output:     audio.Float32,
		Mixdown:    audio.MixAfterResample,
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.TargetRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: target rate %d must be positive", ErrInvalidConfig, c.TargetRate))
	}
	if !c.Output.IsValid() {
		errs = append(errs, fmt.Errorf("%w: unknown output format %d", ErrInvalidConfig, c.Output))
	}
	if !c.Mixdown.IsValid() {
		errs = append(errs, fmt.Errorf("%w: unknown mixdown order %d", ErrInvalidConfig, c.Mixdown))
	}
	return errors.Join(errs...)
}
