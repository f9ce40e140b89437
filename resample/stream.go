// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

// Quality is the preset every Stream is built with.
const Quality = resampler.QualityHigh

// calibrationFrames is the length of the impulse run used to find the
// group delay of a filter configuration.
const calibrationFrames = 16384

// Stream converts fixed-size multi-channel blocks from one rate to another
// with a polyphase resampler, one filter state per channel.
//
// The first Delay output samples per channel are the filter's group delay
// and are dropped, so output sample 0 lines up with input sample 0. The
// tail of the input stays inside the filter until more blocks (zeros, to
// flush) are pushed through.
type Stream struct {
	blockSize int
	channels  int
	delay     int

	r resampler.Resampler

	in   [][]float64
	skip int // leading output samples still to drop
}

// NewStream returns a Stream for the given rates, block size (frames per
// channel per Process call) and channel count.
func NewStream(src, dst, blockSize, channels int) (*Stream, error) {
	if src <= 0 || dst <= 0 {
		return nil, fmt.Errorf("%w: rates %d -> %d", ErrConfig, src, dst)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrConfig, blockSize)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channels %d", ErrConfig, channels)
	}

	r, err := newResampler(src, dst, channels, blockSize)
	if err != nil {
		return nil, err
	}
	delay, err := groupDelay(src, dst)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		blockSize: blockSize,
		channels:  channels,
		delay:     delay,
		r:         r,
		in:        make([][]float64, channels),
		skip:      delay,
	}
	for ch := range s.in {
		s.in[ch] = make([]float64, blockSize)
	}
	return s, nil
}

func newResampler(src, dst, channels, blockSize int) (resampler.Resampler, error) {
	r, err := resampler.New(&resampler.Config{
		InputRate:      float64(src),
		OutputRate:     float64(dst),
		Channels:       channels,
		Quality:        resampler.QualitySpec{Preset: Quality},
		MaxInputSize:   blockSize,
		EnableSIMD:     true,
		EnableParallel: channels > 1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return r, nil
}

// groupDelay measures the delay, in output samples, of the filter built for
// src -> dst by locating the peak of its impulse response. The filters are
// linear phase so the peak sits on the group delay.
func groupDelay(src, dst int) (int, error) {
	r, err := newResampler(src, dst, 1, calibrationFrames)
	if err != nil {
		return 0, err
	}

	impulse := make([]float64, calibrationFrames)
	impulse[0] = 1
	out, err := r.ProcessMulti([][]float64{impulse})
	if err != nil {
		return 0, fmt.Errorf("resample: calibrate: %w", err)
	}

	peak, at := 0.0, 0
	for i, v := range out[0] {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak, at = v, i
		}
	}
	return at, nil
}

// BlockSize returns the number of frames per channel Process expects.
func (s *Stream) BlockSize() int { return s.blockSize }

// Delay returns the filter latency in output samples.
func (s *Stream) Delay() int { return s.delay }

// Process filters one block per channel and returns the output samples the
// filter has produced so far, one slice per channel. Every slice in in must
// hold exactly BlockSize frames.
func (s *Stream) Process(in [][]float32) ([][]float32, error) {
	if len(in) != s.channels {
		return nil, fmt.Errorf("%w: got %d channels, want %d", ErrConfig, len(in), s.channels)
	}
	for ch, block := range in {
		if len(block) != s.blockSize {
			return nil, fmt.Errorf("%w: channel %d block has %d frames, want %d", ErrConfig, ch, len(block), s.blockSize)
		}
		for i, v := range block {
			s.in[ch][i] = float64(v)
		}
	}

	res, err := s.r.ProcessMulti(s.in)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	n := len(res[0])
	for ch, o := range res {
		if len(o) != n {
			return nil, fmt.Errorf("resample: channel %d produced %d samples, want %d", ch, len(o), n)
		}
	}

	drop := min(s.skip, n)
	s.skip -= drop

	out := make([][]float32, s.channels)
	for ch, o := range res {
		o = o[drop:]
		f := make([]float32, len(o))
		for i, v := range o {
			f[i] = float32(v)
		}
		out[ch] = f
	}
	return out, nil
}
