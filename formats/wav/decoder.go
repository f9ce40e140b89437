// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
	"github.com/ik5/pcmdecoder/internal/pcmchunk"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// framesPerPacket is the number of frames read per NextPacket call.
	framesPerPacket = 4096
)

// Format is the WAV codec.Format.
type Format struct{}

func (Format) Name() string         { return "wav" }
func (Format) Extensions() []string { return []string{"wav", "wave"} }

func (Format) Match(head []byte) bool {
	return len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE"))
}

func (Format) Open(rs io.ReadSeeker) (codec.Demuxer, error) {
	d := gowav.NewDecoder(rs)
	if !d.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return &demuxer{
		dec:        d,
		sampleRate: int(d.SampleRate),
		channels:   int(d.NumChans),
		bitDepth:   int(d.BitDepth),
		format:     int(d.WavAudioFormat),
	}, nil
}

type demuxer struct {
	dec        *gowav.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	format     int
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
		Codec:      fmt.Sprintf("pcm_s%d", d.bitDepth),
	}, true
}

func (d *demuxer) NextPacket() (codec.Packet, error) {
	if d.chunks == nil {
		d.chunks = pcmchunk.NewReader(d.dec, d.sampleRate, d.channels, framesPerPacket)
	}
	data, err := d.chunks.Next()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("wav: %w", err)
	}
	return packet{data: data}, nil
}

func (d *demuxer) NewDecoder(t codec.Track) (codec.Decoder, error) {
	if d.format != formatPCM && d.format != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrOnlyPCMSupported, d.format)
	}
	switch d.bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, d.bitDepth)
	}

	return &decoder{
		sampleRate: d.sampleRate,
		channels:   d.channels,
		bitDepth:   d.bitDepth,
		scale:      pcmchunk.Scale(d.bitDepth),
	}, nil
}

type decoder struct {
	sampleRate int
	channels   int
	bitDepth   int
	scale      float32
}

func (d *decoder) Decode(p codec.Packet) (audio.Frame, error) {
	pkt, ok := p.(packet)
	if !ok {
		return audio.Frame{}, &codec.DecodeError{Msg: fmt.Sprintf("wav: unexpected packet %T", p)}
	}

	out := make([]float32, len(pkt.data))
	if d.bitDepth == 8 {
		// 8-bit WAV is unsigned.
		for i, v := range pkt.data {
			out[i] = float32(v-128) / 128
		}
	} else {
		for i, v := range pkt.data {
			out[i] = float32(v) * d.scale
		}
	}

	return audio.Frame{SampleRate: d.sampleRate, Channels: d.channels, Float: out}, nil
}

func (d *decoder) Reset() {}
