// SPDX-License-Identifier: EPL-2.0

// Package resample converts sample rates.
//
// Two strategies are provided. Stream is a block streaming resampler for
// multi-channel input built on the go-audio-resampler polyphase engine,
// with its group delay removed so output stays aligned with input.
// FixedRatio resamples one complete mono buffer at a fixed ratio with a
// polynomial kernel and no filter state.
//
// Channels and Mono drive the two strategies over whole buffers:
//
//	mono, err := resample.Channels(runs, 44100, 48000) // Stream, then mix
//	out, err := resample.Mono(mixed, 44100, 48000)     // FixedRatio
//
// Both return an empty slice for empty input or a zero rate and skip the
// filter when the rates are equal.
package resample
