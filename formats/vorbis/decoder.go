// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
)

// framesPerPacket is the number of frames read per NextPacket call.
const framesPerPacket = 4096

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// Format is the Ogg Vorbis codec.Format.
type Format struct{}

func (Format) Name() string         { return "vorbis" }
func (Format) Extensions() []string { return []string{"ogg", "oga"} }

// Match requires an Ogg page whose first packet is a Vorbis
// identification header.
func (Format) Match(head []byte) bool {
	return len(head) >= 4 && bytes.Equal(head[:4], []byte("OggS")) &&
		bytes.Contains(head, []byte("\x01vorbis"))
}

func (Format) Open(rs io.ReadSeeker) (codec.Demuxer, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}
	return newDemuxer(dec), nil
}

func newDemuxer(r oggReader) *demuxer {
	d := &demuxer{
		dec:        r,
		sampleRate: r.SampleRate(),
		channels:   r.Channels(),
	}
	if d.channels > 0 {
		d.buf = make([]float32, framesPerPacket*d.channels)
	}
	return d
}

type demuxer struct {
	dec        oggReader
	sampleRate int
	channels   int
	buf        []float32
	carry      int // samples of an incomplete frame kept at the head of buf
	eof        bool
}

type packet struct {
	data []float32
}

func (packet) TrackID() uint32 { return 0 }

func (d *demuxer) DefaultTrack() (codec.Track, bool) {
	if d.channels <= 0 {
		return codec.Track{}, false
	}
	return codec.Track{SampleRate: d.sampleRate, Channels: d.channels, Codec: "vorbis"}, true
}

func (d *demuxer) NextPacket() (codec.Packet, error) {
	if d.channels <= 0 {
		return nil, io.EOF
	}

	for !d.eof {
		n, err := d.dec.Read(d.buf[d.carry:])
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("vorbis: read: %w", err)
			}
			d.eof = true
		}

		avail := d.carry + n
		whole := avail - avail%d.channels
		if whole == 0 {
			d.carry = avail
			continue
		}

		data := make([]float32, whole)
		copy(data, d.buf[:whole])
		d.carry = copy(d.buf, d.buf[whole:avail])
		return packet{data: data}, nil
	}
	return nil, io.EOF
}

func (d *demuxer) NewDecoder(codec.Track) (codec.Decoder, error) {
	if d.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidStream, d.sampleRate)
	}
	return &decoder{sampleRate: d.sampleRate, channels: d.channels}, nil
}

type decoder struct {
	sampleRate int
	channels   int
}

func (d *decoder) Decode(p codec.Packet) (audio.Frame, error) {
	pkt, ok := p.(packet)
	if !ok {
		return audio.Frame{}, &codec.DecodeError{Msg: fmt.Sprintf("vorbis: unexpected packet %T", p)}
	}
	return audio.Frame{SampleRate: d.sampleRate, Channels: d.channels, Float: pkt.data}, nil
}

func (d *decoder) Reset() {}
