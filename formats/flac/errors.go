// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrNotFlacFile indicates the stream signature or STREAMINFO block
	// could not be read.
	ErrNotFlacFile = errors.New("not a FLAC stream")

	// ErrUnsupportedBitDepth indicates a bit depth outside 4..32.
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
)
