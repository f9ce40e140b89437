// SPDX-License-Identifier: EPL-2.0

// Package flac decodes native FLAC streams with github.com/mewkiz/flac.
//
// Every FLAC frame becomes one packet. The demuxer reads the frame header
// and the decoder parses the subframes, so a frame that fails its CRC is
// reported as a transient codec.DecodeError and skipped by the pipeline.
// Samples are normalised by 2^(bits-1).
//
//	reg := codec.NewRegistry()
//	reg.Register(flac.Format{})
package flac
