// SPDX-License-Identifier: EPL-2.0

// Package pcmdecoder turns a complete compressed or containerised audio
// stream into one mono PCM buffer at a fixed sample rate.
//
// A Session owns the pipeline and a single buffer slot. Decode probes the
// bytes, drains the default track, resamples to the target rate, mixes to
// mono and caches the result; the caller then reads it back and frees it:
//
//	s, _ := pcmdecoder.New(pcmdecoder.DefaultConfig())
//	if err := s.Decode(data); err != nil {
//	    return err
//	}
//	pcm := make([]float32, s.Size())
//	_, _ = s.CopyFloat32(pcm)
//	_ = s.Free()
//
// # Supported Formats
//
// DefaultRegistry probes the following formats:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//   - Ogg Vorbis via formats/vorbis
//   - MP3 via formats/mp3
//
// # Pipeline Variants
//
// Config selects the output representation and where the mixdown happens:
//
//   - MixAfterResample keeps every channel, resamples them with the block
//     streaming resampler (4096 frame blocks, zero padded tail, three flush
//     blocks) and averages afterwards.
//   - MixBeforeResample averages each decoded frame on arrival and resamples
//     the mono run once with a fixed-ratio cubic resampler.
//
// With Int16 output the final buffer is quantised to signed 16-bit, rounding
// half away from zero.
//
// # Packet Loop
//
// Packets of other tracks are skipped, a decoder reset request resets the
// decoder and retries the packet, corrupt packets are dropped and end of
// input ends the stream. Any other read or decode error fails the call, as
// does a change of channel count within the stream. Failed calls leave the
// cached buffer unchanged.
//
// The stream is resampled at the rate of the last decoded frame. Streams that
// change rate part way are not resampled per segment; a warning is logged.
//
// # Foreign Callers
//
// cmd/libpcmdecoder builds a C shared library exposing decode, get_size,
// copy and free over a process-wide default session.
package pcmdecoder
