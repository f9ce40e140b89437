// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level building blocks of the decode
// pipeline.
//
// # Frames
//
// A codec adapter hands out Frame values: a sample rate, a channel count and
// interleaved samples, either float32 in [-1.0, 1.0] or int16. Int16 samples
// are normalised by dividing by 32768.
//
// # Accumulation
//
// The Accumulator de-interleaves frames into one run per channel, or mixes
// every frame to a single run on arrival, depending on the MixOrder:
//
//	acc := audio.NewAccumulator(audio.MixAfterResample)
//	for _, f := range frames {
//	    if err := acc.Add(f); err != nil {
//	        return err // audio.ErrChannelCountMismatch
//	    }
//	}
//	runs := acc.Runs()
//
// The channel count is fixed by the first non-empty frame, so the runs are
// always rectangular.
//
// # Mixdown
//
// Mixdown is always the unweighted mean across channels:
//
//	mono, err := audio.Mixdown(runs)
//
// # Quantization
//
// Quantize converts a float sample to int16 by scaling with 32768, clamping
// to the int16 range and rounding half away from zero.
//
// # Output
//
// PCMBuffer is the single-channel result of a decode. Its Bytes method
// serialises it as F32LE or S16LE for hosts that consume raw byte arrays.
package audio
