// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// AppendMixed averages every frame of f across its channels and appends the
// result to dst.
func AppendMixed(dst []float32, f Frame) []float32 {
	channels := f.Channels
	frames := f.Frames()
	if frames == 0 {
		return dst
	}

	dst = grow(dst, frames)

	if channels == 1 {
		if f.Float != nil {
			return append(dst, f.Float[:frames]...)
		}
		for _, s := range f.Int[:frames] {
			dst = append(dst, float32(s)/32768.0)
		}
		return dst
	}

	if f.Float == nil {
		invChannels := float32(1.0) / float32(channels)
		for i := range frames {
			var sum float32
			base := i * channels
			for ch := range channels {
				sum += float32(f.Int[base+ch]) / 32768.0
			}
			dst = append(dst, sum*invChannels)
		}
		return dst
	}

	src := f.Float
	switch channels {
	case 2:
		for i := range frames {
			idx := i << 1
			dst = append(dst, (src[idx]+src[idx+1])*0.5)
		}
	case 4:
		for i := range frames {
			idx := i << 2
			dst = append(dst, (src[idx]+src[idx+1]+src[idx+2]+src[idx+3])*0.25)
		}
	default:
		invChannels := float32(1.0) / float32(channels)
		for i := range frames {
			var sum float32
			base := i * channels
			for ch := range channels {
				sum += src[base+ch]
			}
			dst = append(dst, sum*invChannels)
		}
	}
	return dst
}

// MixInterleaved averages interleaved src into dst, one value per frame.
// len(src) must be a multiple of channels and dst must hold
// len(src)/channels values. It returns the number of frames written.
func MixInterleaved(dst, src []float32, channels int) (int, error) {
	if channels <= 0 || len(src)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	frames := len(src) / channels
	if len(dst) < frames {
		return 0, ErrInvalidDstSize
	}
	mixed := AppendMixed(dst[:0], Frame{Channels: channels, Float: src})
	return len(mixed), nil
}

// Mixdown averages equally long channel runs frame by frame. A single run is
// returned as is.
func Mixdown(runs [][]float32) ([]float32, error) {
	if len(runs) == 0 {
		return nil, nil
	}
	if len(runs) == 1 {
		return runs[0], nil
	}

	frames := len(runs[0])
	for ch, run := range runs {
		if len(run) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d", ErrRaggedChannels, ch, len(run), frames)
		}
	}

	out := make([]float32, frames)
	if len(runs) == 2 {
		left, right := runs[0], runs[1]
		for i := range frames {
			out[i] = (left[i] + right[i]) * 0.5
		}
		return out, nil
	}

	channels := float32(len(runs))
	for i := range frames {
		var sum float32
		for _, run := range runs {
			sum += run[i]
		}
		out[i] = sum / channels
	}
	return out, nil
}
