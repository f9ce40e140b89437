// SPDX-License-Identifier: EPL-2.0

package resample

// Kernel selects the interpolation polynomial used between input samples.
// Mono always uses Cubic; the others are for callers building a FixedRatio
// directly.
type Kernel int

const (
	// Cubic is Catmull-Rom interpolation over four neighbouring samples.
	Cubic Kernel = iota
	// Linear interpolates between the two neighbouring samples.
	Linear
	// Nearest picks the closer neighbouring sample.
	Nearest
)

func (k Kernel) String() string {
	switch k {
	case Cubic:
		return "cubic"
	case Linear:
		return "linear"
	case Nearest:
		return "nearest"
	}
	return "unknown"
}

// CubicInterpolate performs Catmull-Rom interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1)
// y0, y1, y2, y3 are four consecutive samples
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// at interpolates s at integer index i plus fraction x. Indices past either
// end are clamped to the edge samples.
func (k Kernel) at(s []float32, i int, x float32) float32 {
	last := len(s) - 1
	clamp := func(n int) float32 {
		if n < 0 {
			return s[0]
		}
		if n > last {
			return s[last]
		}
		return s[n]
	}

	switch k {
	case Nearest:
		if x >= 0.5 {
			return clamp(i + 1)
		}
		return clamp(i)
	case Linear:
		y1 := clamp(i)
		return y1 + (clamp(i+1)-y1)*x
	default:
		return CubicInterpolate(clamp(i-1), clamp(i), clamp(i+1), clamp(i+2), x)
	}
}
