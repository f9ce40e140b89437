// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/cmplx"

	"github.com/argusdusty/gofft"
)

// Spectrum returns the magnitude of the Hann-windowed FFT of x, zero padded
// to a power of two, for bins 0 through N/2. Bin k is k*rate/N Hz.
func Spectrum(x []float32) []float64 {
	n := 1
	for n < len(x) {
		n <<= 1
	}

	buf := make([]complex128, n)
	for i, v := range x {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(len(x)))
		buf[i] = complex(float64(v)*w, 0)
	}
	if err := gofft.FFT(buf); err != nil {
		panic(err)
	}

	mag := make([]float64, n/2+1)
	for k := range mag {
		mag[k] = cmplx.Abs(buf[k])
	}
	return mag
}

// PeakFrequency returns the frequency in Hz of the strongest non-DC bin of
// x sampled at rate, and the bin width.
func PeakFrequency(x []float32, rate int) (freq, resolution float64) {
	mag := Spectrum(x)
	at := 1
	for k := 2; k < len(mag); k++ {
		if mag[k] > mag[at] {
			at = k
		}
	}
	resolution = float64(rate) / float64(2*(len(mag)-1))
	return float64(at) * resolution, resolution
}

// RMS returns the root mean square of x.
func RMS(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Lag returns the shift d in [-maxLag, maxLag] that maximises the
// correlation of got[i] with want[i-d]. A positive d means got is late.
func Lag(got, want []float32, maxLag int) int {
	best, bestLag := math.Inf(-1), 0
	for d := -maxLag; d <= maxLag; d++ {
		var sum float64
		for i := range got {
			j := i - d
			if j < 0 || j >= len(want) {
				continue
			}
			sum += float64(got[i]) * float64(want[j])
		}
		if sum > best {
			best, bestLag = sum, d
		}
	}
	return bestLag
}
