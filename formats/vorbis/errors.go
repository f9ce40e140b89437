// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNotVorbisFile indicates the Ogg stream has no readable Vorbis headers.
	ErrNotVorbisFile = errors.New("not an Ogg Vorbis stream")

	// ErrInvalidStream indicates the identification header has no sample rate.
	ErrInvalidStream = errors.New("invalid Vorbis stream")
)
