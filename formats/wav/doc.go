// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// Format is a codec.Format for integer PCM WAV at 8, 16, 24 or 32 bits, any
// channel count and any sample rate. Header parsing is done by
// github.com/go-audio/wav. The demuxer emits packets of up to 4096 whole
// frames and the decoder normalises them to float32 in [-1, 1). 8-bit WAV
// is unsigned and is centred on 128.
//
//	reg := codec.NewRegistry()
//	reg.Register(wav.Format{})
//
// WriteWAV16 writes a canonical 44-byte header followed by S16LE samples:
//
//	err := wav.WriteWAV16(os.Stdout, 48000, 1, samples)
//
// The writer does not seek, so it can target pipes and network streams.
//
// # Errors
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedWavLayout: no data chunk could be located
//   - ErrOnlyPCMSupported: the format tag is not integer PCM
//   - ErrUnsupportedBitDepth: bit depth outside 8/16/24/32
//   - ErrInvalidChannels: WriteWAV16 was given a non-positive channel count
package wav
