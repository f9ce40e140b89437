// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
)

const (
	// go-mp3 always produces interleaved stereo S16LE.
	channels  = 2
	frameSize = channels * 2

	framesPerPacket = 4096
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Format is the MPEG-1/2 Layer III codec.Format.
type Format struct{}

func (Format) Name() string         { return "mp3" }
func (Format) Extensions() []string { return []string{"mp3"} }

// Match accepts an ID3v2 tag or an MPEG audio frame sync.
func (Format) Match(head []byte) bool {
	if len(head) >= 3 && bytes.Equal(head[:3], []byte("ID3")) {
		return true
	}
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}

func (Format) Open(rs io.ReadSeeker) (codec.Demuxer, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}
	return newDemuxer(dec), nil
}

func newDemuxer(r mp3Reader) *demuxer {
	return &demuxer{
		dec:        r,
		sampleRate: r.SampleRate(),
		buf:        make([]byte, framesPerPacket*frameSize),
	}
}

type demuxer struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      []byte // bytes of an incomplete trailing frame
	eof        bool
}

type packet struct {
	data []int16
}

func (packet) TrackID() uint32 { return 0 }

func (d *demuxer) DefaultTrack() (codec.Track, bool) {
	return codec.Track{SampleRate: d.sampleRate, Channels: channels, Codec: "mp3"}, true
}

func (d *demuxer) NextPacket() (codec.Packet, error) {
	for !d.eof {
		n, err := d.dec.Read(d.buf[len(d.carry):])
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("mp3: read pcm: %w", err)
			}
			d.eof = true
		}
		if n == 0 && !d.eof {
			continue
		}

		copy(d.buf, d.carry)
		avail := len(d.carry) + n
		whole := avail - avail%frameSize
		d.carry = append(d.carry[:0], d.buf[whole:avail]...)
		if whole == 0 {
			continue
		}

		data := make([]int16, whole/2)
		for i := range data {
			data[i] = int16(binary.LittleEndian.Uint16(d.buf[2*i:]))
		}
		return packet{data: data}, nil
	}
	return nil, io.EOF
}

func (d *demuxer) NewDecoder(codec.Track) (codec.Decoder, error) {
	if d.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidStream, d.sampleRate)
	}
	return &decoder{sampleRate: d.sampleRate}, nil
}

type decoder struct {
	sampleRate int
}

func (d *decoder) Decode(p codec.Packet) (audio.Frame, error) {
	pkt, ok := p.(packet)
	if !ok {
		return audio.Frame{}, &codec.DecodeError{Msg: fmt.Sprintf("mp3: unexpected packet %T", p)}
	}
	return audio.Frame{SampleRate: d.sampleRate, Channels: channels, Int: pkt.data}, nil
}

func (d *decoder) Reset() {}
