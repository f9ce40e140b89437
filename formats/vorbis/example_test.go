// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/pcmdecoder/formats/vorbis"
)

// ExampleFormat_Open shows the error returned for input that is not Ogg.
func ExampleFormat_Open() {
	_, err := vorbis.Format{}.Open(bytes.NewReader([]byte("not an ogg file")))
	fmt.Println(errors.Is(err, vorbis.ErrNotVorbisFile))
	// Output: true
}
