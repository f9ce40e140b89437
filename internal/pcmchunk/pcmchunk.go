// SPDX-License-Identifier: EPL-2.0

// Package pcmchunk reads whole interleaved frames from go-audio integer PCM
// decoders.
package pcmchunk

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Source is the read side of the go-audio wav and aiff decoders.
type Source interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Reader splits a Source into chunks of whole frames. A read that ends in
// the middle of a frame keeps the remainder for the next chunk.
type Reader struct {
	src      Source
	channels int
	buf      *goaudio.IntBuffer
	carry    []int
}

// NewReader returns a Reader producing chunks of at most frames frames.
func NewReader(src Source, sampleRate, channels, frames int) *Reader {
	return &Reader{
		src:      src,
		channels: channels,
		buf: &goaudio.IntBuffer{
			Data:   make([]int, frames*channels),
			Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		},
	}
}

// Next returns the next chunk. It returns io.EOF when the source is drained;
// an incomplete trailing frame is dropped. The chunk is owned by the caller.
func (r *Reader) Next() ([]int, error) {
	if r.channels <= 0 {
		return nil, io.EOF
	}

	for {
		n, err := r.src.PCMBuffer(r.buf)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read pcm: %w", err)
		}
		if n == 0 {
			return nil, io.EOF
		}

		data := make([]int, 0, len(r.carry)+n)
		data = append(data, r.carry...)
		data = append(data, r.buf.Data[:n]...)

		whole := len(data) - len(data)%r.channels
		r.carry = append(r.carry[:0], data[whole:]...)
		if whole > 0 {
			return data[:whole], nil
		}
		if err == io.EOF {
			return nil, io.EOF
		}
	}
}

// Scale returns the factor mapping signed samples of bitDepth bits to [-1, 1).
func Scale(bitDepth int) float32 {
	return 1 / float32(goaudio.IntMaxSignedValue(bitDepth)+1)
}
