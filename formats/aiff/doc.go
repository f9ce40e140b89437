// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files.
//
// Format is a codec.Format backed by github.com/go-audio/aiff. It accepts
// signed big-endian PCM at 8, 16, 24 or 32 bits with any channel count.
// Packets hold up to 4096 whole frames and decode to float32 in [-1, 1).
//
//	reg := codec.NewRegistry()
//	reg.Register(aiff.Format{})
//
// Compressed AIFF-C payloads are not decoded.
package aiff
