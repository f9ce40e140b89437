// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"
)

// SampleFormat selects the representation of a PCM sample.
type SampleFormat int

const (
	// Float32 samples are in [-1, 1].
	Float32 SampleFormat = iota
	// Int16 samples are signed 16-bit fixed point.
	Int16
)

func (f SampleFormat) String() string {
	switch f {
	case Float32:
		return "float32"
	case Int16:
		return "int16"
	}
	return "unknown"
}

// Size returns the byte width of one sample, or 0 for an unknown format.
func (f SampleFormat) Size() int {
	switch f {
	case Float32:
		return 4
	case Int16:
		return 2
	}
	return 0
}

// IsValid reports whether f is a known sample format.
func (f SampleFormat) IsValid() bool { return f.Size() != 0 }

// MixOrder selects where the channel mixdown happens relative to resampling.
type MixOrder int

const (
	// MixAfterResample keeps one run per channel, resamples each channel with
	// the streaming block resampler and averages afterwards.
	MixAfterResample MixOrder = iota
	// MixBeforeResample averages every decoded frame into a single running
	// channel and resamples it once with the fixed-ratio resampler.
	MixBeforeResample
)

func (m MixOrder) String() string {
	switch m {
	case MixAfterResample:
		return "after"
	case MixBeforeResample:
		return "before"
	}
	return "unknown"
}

// IsValid reports whether m is a known mix order.
func (m MixOrder) IsValid() bool {
	return m == MixAfterResample || m == MixBeforeResample
}

// Frame is one unit of decoded audio produced by a codec adapter.
//
// Exactly one of Float or Int holds the interleaved samples; when both are
// set Float wins.
type Frame struct {
	SampleRate int
	Channels   int
	Float      []float32
	Int        []int16
}

// Len returns the number of interleaved samples in the frame.
func (f Frame) Len() int {
	if f.Float != nil {
		return len(f.Float)
	}
	return len(f.Int)
}

// Frames returns the number of complete frames (samples per channel).
func (f Frame) Frames() int {
	if f.Channels <= 0 {
		return 0
	}
	return f.Len() / f.Channels
}

// Sample returns interleaved sample i as a float in [-1, 1].
func (f Frame) Sample(i int) float32 {
	if f.Float != nil {
		return f.Float[i]
	}
	return float32(f.Int[i]) / 32768.0
}

// PCMBuffer is the single-channel output of a decode.
type PCMBuffer struct {
	SampleRate int
	Format     SampleFormat
	Float      []float32
	Int        []int16
}

// Len returns the element count of the buffer in its own representation.
func (b *PCMBuffer) Len() int {
	if b == nil {
		return 0
	}
	if b.Format == Int16 {
		return len(b.Int)
	}
	return len(b.Float)
}

// Bytes serialises the samples as little-endian F32LE or S16LE.
func (b *PCMBuffer) Bytes() []byte {
	if b == nil {
		return nil
	}

	if b.Format == Int16 {
		out := make([]byte, len(b.Int)*2)
		for i, s := range b.Int {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
		}
		return out
	}

	out := make([]byte, len(b.Float)*4)
	for i, s := range b.Float {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(s))
	}
	return out
}

// Clone returns a deep copy of b.
func (b *PCMBuffer) Clone() *PCMBuffer {
	if b == nil {
		return nil
	}
	c := &PCMBuffer{SampleRate: b.SampleRate, Format: b.Format}
	if b.Float != nil {
		c.Float = append([]float32(nil), b.Float...)
	}
	if b.Int != nil {
		c.Int = append([]int16(nil), b.Int...)
	}
	return c
}
