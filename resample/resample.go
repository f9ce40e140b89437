// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"

	"github.com/ik5/pcmdecoder/audio"
)

const (
	// BlockSize is the number of frames per channel fed to a Stream at once.
	BlockSize = 4096
	// FlushBlocks is the number of silent blocks pushed through a Stream
	// after the input to drain the filter delay.
	FlushBlocks = 3
)

// Channels resamples equally long channel runs from src to dst Hz with a
// Stream and averages the channels into one run.
//
// The last partial block is zero padded and FlushBlocks silent blocks follow
// the input. The result is truncated to ceil(frames*dst/src) samples. Empty
// runs or a zero rate yield an empty result. Equal rates skip the filter and
// only mix.
func Channels(runs [][]float32, src, dst int) ([]float32, error) {
	if src < 0 || dst < 0 {
		return nil, fmt.Errorf("%w: rates %d -> %d", ErrConfig, src, dst)
	}
	if len(runs) == 0 || len(runs[0]) == 0 || src == 0 || dst == 0 {
		return []float32{}, nil
	}
	if src == dst {
		return audio.Mixdown(runs)
	}

	frames := len(runs[0])
	for ch, run := range runs {
		if len(run) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", audio.ErrRaggedChannels, ch, len(run), frames)
		}
	}

	s, err := NewStream(src, dst, BlockSize, len(runs))
	if err != nil {
		return nil, err
	}

	want := OutputFrames(frames, src, dst)
	out := make([][]float32, len(runs))
	for ch := range out {
		out[ch] = make([]float32, 0, want+BlockSize)
	}

	blocks := make([][]float32, len(runs))
	pad := make([][]float32, len(runs))
	for ch := range pad {
		pad[ch] = make([]float32, BlockSize)
	}

	push := func(in [][]float32) error {
		res, err := s.Process(in)
		if err != nil {
			return err
		}
		for ch := range out {
			out[ch] = append(out[ch], res[ch]...)
		}
		return nil
	}

	for off := 0; off < frames; off += BlockSize {
		end := off + BlockSize
		if end > frames {
			for ch, run := range runs {
				n := copy(pad[ch], run[off:])
				clear(pad[ch][n:])
				blocks[ch] = pad[ch]
			}
		} else {
			for ch, run := range runs {
				blocks[ch] = run[off:end]
			}
		}
		if err := push(blocks); err != nil {
			return nil, err
		}
	}

	for ch := range pad {
		clear(pad[ch])
	}
	for range FlushBlocks {
		if err := push(pad); err != nil {
			return nil, err
		}
	}

	for ch := range out {
		out[ch] = out[ch][:min(len(out[ch]), want)]
	}
	return audio.Mixdown(out)
}

// Mono resamples a single run from src to dst Hz in one pass with a cubic
// FixedRatio. Empty input or a zero rate yields an empty result. Equal rates
// return run unchanged.
func Mono(run []float32, src, dst int) ([]float32, error) {
	if src < 0 || dst < 0 {
		return nil, fmt.Errorf("%w: rates %d -> %d", ErrConfig, src, dst)
	}
	if len(run) == 0 || src == 0 || dst == 0 {
		return []float32{}, nil
	}
	if src == dst {
		return run, nil
	}

	r, err := NewFixedRatio(float64(dst)/float64(src), MaxRelativeRatio, len(run), Cubic)
	if err != nil {
		return nil, err
	}
	return r.Process(run)
}

// OutputFrames returns ceil(frames*dst/src), the number of output frames
// covering frames input frames.
func OutputFrames(frames, src, dst int) int {
	if frames <= 0 || src <= 0 || dst <= 0 {
		return 0
	}
	n := int64(frames) * int64(dst)
	return int((n + int64(src) - 1) / int64(src))
}
