// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"errors"
	"math"
	"testing"
)

func TestNewFixedRatio_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ratio    float64
		relative float64
		inputLen int
		kernel   Kernel
	}{
		{"zero ratio", 0, 2, 10, Cubic},
		{"negative ratio", -1, 2, 10, Cubic},
		{"nan ratio", math.NaN(), 2, 10, Cubic},
		{"infinite ratio", math.Inf(1), 2, 10, Cubic},
		{"relative below one", 1, 0.5, 10, Cubic},
		{"zero input", 1, 2, 0, Cubic},
		{"unknown kernel", 1, 2, 10, Kernel(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFixedRatio(tt.ratio, tt.relative, tt.inputLen, tt.kernel)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("NewFixedRatio() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestFixedRatio_SetRatio(t *testing.T) {
	t.Parallel()

	r, err := NewFixedRatio(1.5, MaxRelativeRatio, 100, Cubic)
	if err != nil {
		t.Fatalf("NewFixedRatio() error = %v", err)
	}

	tests := []struct {
		ratio float64
		ok    bool
	}{
		{0.75, true},
		{3.0, true},
		{1.0, true},
		{0.7, false},
		{3.1, false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		err := r.SetRatio(tt.ratio)
		if tt.ok && err != nil {
			t.Errorf("SetRatio(%v) error = %v", tt.ratio, err)
		}
		if !tt.ok && !errors.Is(err, ErrConfig) {
			t.Errorf("SetRatio(%v) error = %v, want ErrConfig", tt.ratio, err)
		}
	}

	// Failed calls leave the last accepted ratio.
	if r.Ratio() != 1.0 {
		t.Errorf("Ratio() = %v, want 1.0", r.Ratio())
	}
	if r.OutputLen() != 100 {
		t.Errorf("OutputLen() = %d, want 100", r.OutputLen())
	}
}

func TestFixedRatio_Process(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     int
		dst     int
		in      int
		wantLen int
	}{
		{"44.1k to 48k", 44100, 48000, 4410, 4800},
		{"48k to 16k", 48000, 16000, 4800, 1600},
		{"8k to 48k", 8000, 48000, 800, 4800},
		{"uneven", 44100, 16000, 1000, 363},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := make([]float32, tt.in)
			for i := range in {
				in[i] = float32(i)
			}

			r, err := NewFixedRatio(float64(tt.dst)/float64(tt.src), MaxRelativeRatio, tt.in, Cubic)
			if err != nil {
				t.Fatalf("NewFixedRatio() error = %v", err)
			}

			out, err := r.Process(in)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(out), tt.wantLen)
			}

			// Catmull-Rom reproduces a ramp exactly away from the edges.
			step := float64(tt.src) / float64(tt.dst)
			margin := int(2/step) + 2
			for j := margin; j < len(out)-margin; j++ {
				want := float64(j) * step
				if math.Abs(float64(out[j])-want) > 1e-3*math.Max(1, want) {
					t.Fatalf("out[%d] = %v, want %v", j, out[j], want)
				}
			}
		})
	}
}

func TestFixedRatio_ProcessWrongLength(t *testing.T) {
	t.Parallel()

	r, err := NewFixedRatio(2, MaxRelativeRatio, 10, Linear)
	if err != nil {
		t.Fatalf("NewFixedRatio() error = %v", err)
	}

	if _, err := r.Process(make([]float32, 9)); !errors.Is(err, ErrConfig) {
		t.Errorf("Process() error = %v, want ErrConfig", err)
	}
}

func TestFixedRatio_Kernels(t *testing.T) {
	t.Parallel()

	in := []float32{0, 1, 0, -1}

	tests := []struct {
		kernel Kernel
		want   []float32
	}{
		{Nearest, []float32{0, 1, 1, 0, 0, -1, -1, -1}},
		{Linear, []float32{0, 0.5, 1, 0.5, 0, -0.5, -1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.kernel.String(), func(t *testing.T) {
			t.Parallel()

			r, err := NewFixedRatio(2, MaxRelativeRatio, len(in), tt.kernel)
			if err != nil {
				t.Fatalf("NewFixedRatio() error = %v", err)
			}
			out, err := r.Process(in)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(out), len(tt.want))
			}
			for i := range tt.want {
				if out[i] != tt.want[i] {
					t.Errorf("out[%d] = %v, want %v", i, out[i], tt.want[i])
				}
			}
		})
	}
}

func BenchmarkFixedRatio_Process(b *testing.B) {
	in := make([]float32, 44100)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
	}
	r, err := NewFixedRatio(48000.0/44100.0, MaxRelativeRatio, len(in), Cubic)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = r.Process(in)
	}
}
