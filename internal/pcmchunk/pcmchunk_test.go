// SPDX-License-Identifier: EPL-2.0

package pcmchunk

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// scriptedSource returns reads of the given sizes from samples.
type scriptedSource struct {
	samples []int
	reads   []int
	err     error
}

func (s *scriptedSource) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(s.samples) == 0 {
		return 0, nil
	}
	n := len(buf.Data)
	if len(s.reads) > 0 {
		n = s.reads[0]
		s.reads = s.reads[1:]
	}
	n = min(n, len(s.samples))
	copy(buf.Data, s.samples[:n])
	s.samples = s.samples[n:]
	return n, nil
}

func TestReader_WholeFrames(t *testing.T) {
	t.Parallel()

	samples := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	r := NewReader(&scriptedSource{samples: samples, reads: []int{3, 1, 5}}, 8000, 2, 4)

	var chunks [][]int
	for {
		c, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if len(c)%2 != 0 {
			t.Fatalf("chunk %v is not whole frames", c)
		}
		chunks = append(chunks, c)
	}

	var got []int
	for _, c := range chunks {
		got = append(got, c...)
	}
	// The incomplete last frame (11) is dropped.
	want := samples[:10]
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReader_ChunkOwnership(t *testing.T) {
	t.Parallel()

	r := NewReader(&scriptedSource{samples: []int{1, 2, 3, 4}}, 8000, 1, 2)
	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if first[0] != 1 || first[1] != 2 {
		t.Errorf("first chunk overwritten: %v", first)
	}
}

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad chunk")
	r := NewReader(&scriptedSource{err: cause}, 8000, 1, 2)
	if _, err := r.Next(); !errors.Is(err, cause) {
		t.Errorf("Next() error = %v, want %v", err, cause)
	}

	r = NewReader(&scriptedSource{err: io.EOF}, 8000, 1, 2)
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}

	r = NewReader(&scriptedSource{samples: []int{1}}, 8000, 0, 2)
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() with no channels error = %v, want io.EOF", err)
	}
}

func TestScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		want float32
	}{
		{8, 1.0 / 128},
		{16, 1.0 / 32768},
		{24, 1.0 / 8388608},
		{32, 1.0 / 2147483648},
	}
	for _, tt := range tests {
		if got := Scale(tt.bits); got != tt.want {
			t.Errorf("Scale(%d) = %v, want %v", tt.bits, got, tt.want)
		}
	}
}
