// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrProbe is returned when no registered format recognises the input.
	ErrProbe = errors.New("unsupported or unrecognised audio format")

	// ErrNoTrack is returned when a container has no decodable track.
	ErrNoTrack = errors.New("no decodable track")

	// ErrDecoderInit is returned when a decoder cannot be built for a track.
	ErrDecoderInit = errors.New("decoder initialisation failed")

	// ErrResetRequired signals that the decoder must be reset before the
	// stream can continue.
	ErrResetRequired = errors.New("decoder reset required")
)

// DecodeError reports a corrupt packet. The packet is lost but the stream
// is still readable.
type DecodeError struct {
	Msg string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode error: " + e.Msg
	}
	return fmt.Sprintf("decode error: %s: %v", e.Msg, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a per-packet decode error.
func IsTransient(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
