// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"
	"math"
)

// MaxRelativeRatio bounds how far SetRatio may move a FixedRatio away from
// its construction ratio, in either direction.
const MaxRelativeRatio = 2.0

// FixedRatio resamples one complete buffer at a ratio chosen up front. It is
// sized for a fixed input length and needs no chunking or flushing.
type FixedRatio struct {
	base     float64
	ratio    float64
	relative float64
	inputLen int
	kernel   Kernel
}

// NewFixedRatio returns a resampler converting inputLen samples by ratio
// (target rate / source rate). relative is the largest factor SetRatio may
// later apply to ratio.
func NewFixedRatio(ratio, relative float64, inputLen int, kernel Kernel) (*FixedRatio, error) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: ratio %v", ErrConfig, ratio)
	}
	if !(relative >= 1) || math.IsInf(relative, 0) {
		return nil, fmt.Errorf("%w: relative ratio %v must be >= 1", ErrConfig, relative)
	}
	if inputLen <= 0 {
		return nil, fmt.Errorf("%w: input length %d", ErrConfig, inputLen)
	}
	switch kernel {
	case Cubic, Linear, Nearest:
	default:
		return nil, fmt.Errorf("%w: kernel %d", ErrConfig, kernel)
	}

	return &FixedRatio{
		base:     ratio,
		ratio:    ratio,
		relative: relative,
		inputLen: inputLen,
		kernel:   kernel,
	}, nil
}

// Ratio returns the current ratio.
func (r *FixedRatio) Ratio() float64 { return r.ratio }

// SetRatio changes the ratio within [base/relative, base*relative]. Mono
// never calls it; it lets a host nudge the rate of a FixedRatio it owns,
// for example to follow clock drift.
func (r *FixedRatio) SetRatio(ratio float64) error {
	lo, hi := r.base/r.relative, r.base*r.relative
	if !(ratio >= lo && ratio <= hi) {
		return fmt.Errorf("%w: ratio %v outside [%v, %v]", ErrConfig, ratio, lo, hi)
	}
	r.ratio = ratio
	return nil
}

// OutputLen returns the number of samples Process produces.
func (r *FixedRatio) OutputLen() int {
	return int(math.Ceil(float64(r.inputLen)*r.ratio - 1e-9))
}

// Process resamples in, which must hold exactly the configured input length.
func (r *FixedRatio) Process(in []float32) ([]float32, error) {
	if len(in) != r.inputLen {
		return nil, fmt.Errorf("%w: got %d input samples, want %d", ErrConfig, len(in), r.inputLen)
	}

	n := r.OutputLen()
	out := make([]float32, n)
	step := 1 / r.ratio
	for j := range n {
		pos := float64(j) * step
		i := int(pos)
		out[j] = r.kernel.at(in, i, float32(pos-float64(i)))
	}
	return out, nil
}
