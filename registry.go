// SPDX-License-Identifier: EPL-2.0

package pcmdecoder

import (
	"github.com/ik5/pcmdecoder/codec"
	"github.com/ik5/pcmdecoder/formats/aiff"
	"github.com/ik5/pcmdecoder/formats/flac"
	"github.com/ik5/pcmdecoder/formats/mp3"
	"github.com/ik5/pcmdecoder/formats/vorbis"
	"github.com/ik5/pcmdecoder/formats/wav"
)

// DefaultRegistry returns a registry with every bundled format. MP3 is
// registered last because its frame-sync signature is the weakest.
func DefaultRegistry() *codec.Registry {
	r := codec.NewRegistry()
	r.Register(wav.Format{})
	r.Register(aiff.Format{})
	r.Register(flac.Format{})
	r.Register(vorbis.Format{})
	r.Register(mp3.Format{})
	return r
}
