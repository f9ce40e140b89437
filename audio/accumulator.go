// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Accumulator collects decoded frames into channel runs.
//
// With MixAfterResample every channel keeps its own run. With
// MixBeforeResample each frame is averaged on arrival and appended to a
// single run. In both modes the channel count is fixed by the first
// non-empty frame and a later frame with a different count is an error.
type Accumulator struct {
	order    MixOrder
	channels int
	runs     [][]float32
	mono     []float32
}

func NewAccumulator(order MixOrder) *Accumulator {
	return &Accumulator{order: order}
}

// Add appends the samples of f. Frames without channels or without a
// complete frame of samples are ignored.
func (a *Accumulator) Add(f Frame) error {
	if f.Channels <= 0 {
		return nil
	}
	frames := f.Frames()
	if frames == 0 {
		return nil
	}

	if a.channels == 0 {
		a.channels = f.Channels
		if a.order == MixAfterResample {
			a.runs = make([][]float32, f.Channels)
		}
	} else if a.channels != f.Channels {
		return fmt.Errorf("%w: expected %d, got %d", ErrChannelCountMismatch, a.channels, f.Channels)
	}

	if a.order == MixBeforeResample {
		a.mono = AppendMixed(a.mono, f)
		return nil
	}

	channels := a.channels
	for ch := range channels {
		a.runs[ch] = grow(a.runs[ch], frames)
	}

	if f.Float != nil {
		for i := range frames {
			base := i * channels
			for ch := range channels {
				a.runs[ch] = append(a.runs[ch], f.Float[base+ch])
			}
		}
		return nil
	}

	for i := range frames {
		base := i * channels
		for ch := range channels {
			a.runs[ch] = append(a.runs[ch], float32(f.Int[base+ch])/32768.0)
		}
	}
	return nil
}

// Channels returns the established channel count, or 0 before the first
// non-empty frame.
func (a *Accumulator) Channels() int { return a.channels }

// Frames returns the number of accumulated frames per channel.
func (a *Accumulator) Frames() int {
	if a.order == MixBeforeResample {
		return len(a.mono)
	}
	if len(a.runs) == 0 {
		return 0
	}
	return len(a.runs[0])
}

// Runs returns the accumulated channel runs. In MixBeforeResample mode this
// is the single mixed run. The slices are owned by the accumulator.
func (a *Accumulator) Runs() [][]float32 {
	if a.order == MixBeforeResample {
		if a.mono == nil {
			return nil
		}
		return [][]float32{a.mono}
	}
	return a.runs
}

// Mono returns the mixed run. It is nil in MixAfterResample mode.
func (a *Accumulator) Mono() []float32 { return a.mono }

func grow(s []float32, n int) []float32 {
	if cap(s)-len(s) >= n {
		return s
	}
	ns := make([]float32, len(s), len(s)+max(n, cap(s)))
	copy(ns, s)
	return ns
}
