// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams.
//
// Format is a codec.Format backed by github.com/jfreymuth/oggvorbis, which
// decodes straight to interleaved float32. Packets carry up to 4096 whole
// frames and keep the native channel count.
//
//	reg := codec.NewRegistry()
//	reg.Register(vorbis.Format{})
//
// Other codecs in an Ogg container are not recognised by Match.
package vorbis
