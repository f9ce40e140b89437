// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
	"github.com/ik5/pcmdecoder/internal/pcmchunk"
)

// framesPerPacket is the number of frames read per NextPacket call.
const framesPerPacket = 4096

// aiffReader is the part of aiff.Decoder the demuxer uses.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Format is the AIFF codec.Format. Only uncompressed AIFF-C is supported.
type Format struct{}

func (Format) Name() string         { return "aiff" }
func (Format) Extensions() []string { return []string{"aiff", "aif", "aifc"} }

func (Format) Match(head []byte) bool {
	if len(head) < 12 || !bytes.Equal(head[0:4], []byte("FORM")) {
		return false
	}
	kind := head[8:12]
	return bytes.Equal(kind, []byte("AIFF")) || bytes.Equal(kind, []byte("AIFC"))
}

func (Format) Open(rs io.ReadSeeker) (codec.Demuxer, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return newDemuxer(dec, int(dec.BitDepth))
}

func newDemuxer(r aiffReader, bitDepth int) (*demuxer, error) {
	f := r.Format()
	if f == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	return &demuxer{
		src:        r,
		sampleRate: f.SampleRate,
		channels:   f.NumChannels,
		bitDepth:   bitDepth,
	}, nil
}

type demuxer struct {
	src        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	chunks     *pcmchunk.Reader
}

type packet struct {
	data []int
}

func (packet) TrackID() uint32 { return 0 }

func (d *demuxer) DefaultTrack() (codec.Track, bool) {
	if d.channels <= 0 {
		return codec.Track{}, false
	}
	return codec.Track{
		SampleRate: d.sampleRate,
		Channels:   d.channels,
		Codec:      fmt.Sprintf("pcm_s%dbe", d.bitDepth),
	}, true
}

func (d *demuxer) NextPacket() (codec.Packet, error) {
	if d.chunks == nil {
		d.chunks = pcmchunk.NewReader(d.src, d.sampleRate, d.channels, framesPerPacket)
	}
	data, err := d.chunks.Next()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("aiff: %w", err)
	}
	return packet{data: data}, nil
}

func (d *demuxer) NewDecoder(codec.Track) (codec.Decoder, error) {
	switch d.bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, d.bitDepth)
	}
	return &decoder{
		sampleRate: d.sampleRate,
		channels:   d.channels,
		scale:      pcmchunk.Scale(d.bitDepth),
	}, nil
}

// decoder normalises signed big-endian PCM. Unlike WAV, 8-bit AIFF is
// signed, so every depth uses the same scale.
type decoder struct {
	sampleRate int
	channels   int
	scale      float32
}

func (d *decoder) Decode(p codec.Packet) (audio.Frame, error) {
	pkt, ok := p.(packet)
	if !ok {
		return audio.Frame{}, &codec.DecodeError{Msg: fmt.Sprintf("aiff: unexpected packet %T", p)}
	}

	out := make([]float32, len(pkt.data))
	for i, v := range pkt.data {
		out[i] = float32(v) * d.scale
	}
	return audio.Frame{SampleRate: d.sampleRate, Channels: d.channels, Float: out}, nil
}

func (d *decoder) Reset() {}
