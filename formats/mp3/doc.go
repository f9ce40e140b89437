// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio Layer III streams.
//
// Format is a codec.Format backed by github.com/hajimehoshi/go-mp3. The
// library always outputs interleaved stereo S16LE, so mono files decode
// as two identical channels. Packets carry up to 4096 frames of int16
// samples; the pipeline normalises them by 1/32768.
//
//	reg := codec.NewRegistry()
//	reg.Register(mp3.Format{})
//
// Match accepts an ID3v2 tag or a raw MPEG frame sync, so the format
// should be registered after containers with stronger magic numbers.
package mp3
