// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrNotMP3File indicates go-mp3 could not find a decodable frame.
	ErrNotMP3File = errors.New("not an MP3 stream")

	// ErrInvalidStream indicates the stream header carries no sample rate.
	ErrInvalidStream = errors.New("invalid MP3 stream")
)
