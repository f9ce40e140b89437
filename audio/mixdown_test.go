// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"
)

func TestAppendMixed_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := []float32{0.5, 0.5, 0.5, 0.5}
	got := AppendMixed(nil, Frame{Channels: 1, Float: src})

	if len(got) != len(src) {
		t.Fatalf("len = %d, want %d", len(got), len(src))
	}
	for i := range got {
		if got[i] != 0.5 {
			t.Errorf("got[%d] = %v, want 0.5", i, got[i])
		}
	}
}

func TestAppendMixed_Channels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		vals     []float32 // one frame
		want     float32
	}{
		{"stereo", 2, []float32{0.4, 0.6}, 0.5},
		{"quad", 4, []float32{0.1, 0.2, 0.3, 0.4}, 0.25},
		{"three channels", 3, []float32{0.3, 0.6, 0.9}, 0.6},
		{"5.1", 6, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var src []float32
			for range 10 {
				src = append(src, tt.vals...)
			}

			got := AppendMixed(nil, Frame{Channels: tt.channels, Float: src})
			if len(got) != 10 {
				t.Fatalf("len = %d, want 10", len(got))
			}
			for i, v := range got {
				if math.Abs(float64(v-tt.want)) > 0.001 {
					t.Errorf("got[%d] = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestAppendMixed_Int16(t *testing.T) {
	t.Parallel()

	got := AppendMixed([]float32{1}, Frame{Channels: 2, Int: []int16{16384, -16384, 16384, 16384}})
	want := []float32{1, 0, 0.5}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	mono := AppendMixed(nil, Frame{Channels: 1, Int: []int16{-16384}})
	if len(mono) != 1 || mono[0] != -0.5 {
		t.Errorf("mono int16 = %v, want [-0.5]", mono)
	}
}

func TestMixInterleaved(t *testing.T) {
	t.Parallel()

	dst := make([]float32, 2)
	n, err := MixInterleaved(dst, []float32{1, 0, 0, -1}, 2)
	if err != nil {
		t.Fatalf("MixInterleaved() error = %v", err)
	}
	if n != 2 || dst[0] != 0.5 || dst[1] != -0.5 {
		t.Errorf("MixInterleaved() = %d %v, want 2 [0.5 -0.5]", n, dst)
	}

	if _, err := MixInterleaved(dst, []float32{1, 2, 3}, 2); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd src error = %v, want ErrInvalidDstSize", err)
	}
	if _, err := MixInterleaved(dst[:1], []float32{1, 2, 3, 4}, 2); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("short dst error = %v, want ErrInvalidDstSize", err)
	}
	if _, err := MixInterleaved(dst, nil, 0); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("zero channels error = %v, want ErrInvalidDstSize", err)
	}
}

func TestMixdown(t *testing.T) {
	t.Parallel()

	out, err := Mixdown(nil)
	if err != nil || out != nil {
		t.Errorf("Mixdown(nil) = %v, %v; want nil, nil", out, err)
	}

	single := []float32{0.1, 0.2}
	out, err = Mixdown([][]float32{single})
	if err != nil || &out[0] != &single[0] {
		t.Error("Mixdown of a single run should return it unchanged")
	}

	out, err = Mixdown([][]float32{{0, 1}, {1, 0}})
	if err != nil {
		t.Fatalf("Mixdown() error = %v", err)
	}
	if out[0] != 0.5 || out[1] != 0.5 {
		t.Errorf("stereo mixdown = %v, want [0.5 0.5]", out)
	}

	out, err = Mixdown([][]float32{{0.3}, {0.6}, {0.9}})
	if err != nil {
		t.Fatalf("Mixdown() error = %v", err)
	}
	if math.Abs(float64(out[0]-0.6)) > 1e-6 {
		t.Errorf("three channel mixdown = %v, want 0.6", out[0])
	}

	if _, err := Mixdown([][]float32{{1, 2}, {1}}); !errors.Is(err, ErrRaggedChannels) {
		t.Errorf("ragged error = %v, want ErrRaggedChannels", err)
	}
}

func BenchmarkAppendMixed_Stereo(b *testing.B) {
	src := make([]float32, 4096*2)
	for i := range src {
		src[i] = float32(i%100) / 100.0
	}
	frame := Frame{Channels: 2, Float: src}
	dst := make([]float32, 0, 4096)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		dst = AppendMixed(dst[:0], frame)
	}
}

func TestAppendMixed_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	frame := Frame{Channels: 2, Float: make([]float32, 2048)}
	dst := make([]float32, 0, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		dst = AppendMixed(dst[:0], frame)
	})

	if allocs > 0 {
		t.Errorf("AppendMixed allocated %v times with enough capacity, want 0", allocs)
	}
}
