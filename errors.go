// SPDX-License-Identifier: EPL-2.0

package pcmdecoder

import "errors"

var (
	// ErrIO wraps a non end-of-stream failure while reading or decoding
	// packets.
	ErrIO = errors.New("audio stream read failed")

	// ErrEmpty is returned when reading a session whose buffer slot is empty.
	ErrEmpty = errors.New("no decoded buffer")

	// ErrPoisoned is returned by every operation on a session after a panic
	// occurred while its lock was held.
	ErrPoisoned = errors.New("session lock poisoned")

	// ErrShortBuffer is returned when a copy destination cannot hold the
	// cached buffer.
	ErrShortBuffer = errors.New("destination buffer too small")

	// ErrSampleFormat is returned when copying into a slice of the wrong
	// sample type.
	ErrSampleFormat = errors.New("sample format mismatch")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)
