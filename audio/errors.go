// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidDstSize is returned when an interleaved buffer is not a
	// whole number of frames or the destination cannot hold the mix.
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrChannelCountMismatch is returned when a frame reports a channel
	// count different from the one established by the first frame.
	ErrChannelCountMismatch = errors.New("channel count changed within stream")

	// ErrRaggedChannels is returned when channel runs differ in length.
	ErrRaggedChannels = errors.New("channel buffers must be the same length")
)
