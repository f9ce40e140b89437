// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Quantize converts a float sample to signed 16-bit. The sample is scaled by
// 32768, clamped to [-32768, 32767] and rounded half away from zero.
func Quantize(x float32) int16 {
	v := float64(x) * 32768.0
	if v > math.MaxInt16 {
		v = math.MaxInt16
	} else if v < math.MinInt16 {
		v = math.MinInt16
	} else if v != v {
		// NaN
		return 0
	}
	return int16(math.Round(v))
}

// QuantizeSlice converts src into dst, growing dst when needed, and returns
// the filled slice.
func QuantizeSlice(dst []int16, src []float32) []int16 {
	if cap(dst) < len(src) {
		dst = make([]int16, len(src))
	}
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = Quantize(x)
	}
	return dst
}
