// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
)

// frameReader is the part of flac.Stream the demuxer uses.
type frameReader interface {
	Next() (*frame.Frame, error)
}

// Format is the native FLAC codec.Format.
type Format struct{}

func (Format) Name() string         { return "flac" }
func (Format) Extensions() []string { return []string{"flac"} }

func (Format) Match(head []byte) bool {
	return len(head) >= 4 && bytes.Equal(head[:4], []byte("fLaC"))
}

func (Format) Open(rs io.ReadSeeker) (codec.Demuxer, error) {
	stream, err := flac.New(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	info := stream.Info
	return &demuxer{
		frames:     stream,
		parse:      (*frame.Frame).Parse,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}

type demuxer struct {
	frames     frameReader
	parse      func(*frame.Frame) error
	sampleRate int
	channels   int
	bitDepth   int
}

// packet is a FLAC frame whose header has been read. Its subframes are
// parsed by the decoder, so packets must be decoded in stream order.
type packet struct {
	frame *frame.Frame
	parse func(*frame.Frame) error
}

func (packet) TrackID() uint32 { return 0 }

func (d *demuxer) DefaultTrack() (codec.Track, bool) {
	if d.channels <= 0 {
		return codec.Track{}, false
	}
	return codec.Track{SampleRate: d.sampleRate, Channels: d.channels, Codec: "flac"}, true
}

func (d *demuxer) NextPacket() (codec.Packet, error) {
	f, err := d.frames.Next()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("flac: read frame header: %w", err)
	}
	return packet{frame: f, parse: d.parse}, nil
}

func (d *demuxer) NewDecoder(codec.Track) (codec.Decoder, error) {
	if d.bitDepth < 4 || d.bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, d.bitDepth)
	}
	return &decoder{sampleRate: d.sampleRate, bitDepth: d.bitDepth}, nil
}

type decoder struct {
	sampleRate int
	bitDepth   int
}

func (d *decoder) Decode(p codec.Packet) (audio.Frame, error) {
	pkt, ok := p.(packet)
	if !ok || pkt.frame == nil {
		return audio.Frame{}, &codec.DecodeError{Msg: fmt.Sprintf("flac: unexpected packet %T", p)}
	}

	f := pkt.frame
	if pkt.parse != nil {
		if err := pkt.parse(f); err != nil {
			return audio.Frame{}, &codec.DecodeError{Msg: "flac: parse frame", Err: err}
		}
	}

	channels := len(f.Subframes)
	if channels == 0 {
		return audio.Frame{}, nil
	}
	frames := len(f.Subframes[0].Samples)
	for ch, sub := range f.Subframes {
		if len(sub.Samples) != frames {
			return audio.Frame{}, &codec.DecodeError{
				Msg: fmt.Sprintf("flac: subframe %d has %d samples, want %d", ch, len(sub.Samples), frames),
			}
		}
	}

	bits := int(f.BitsPerSample)
	if bits == 0 {
		bits = d.bitDepth
	}
	scale := 1 / float32(int64(1)<<(bits-1))

	rate := int(f.SampleRate)
	if rate == 0 {
		rate = d.sampleRate
	}

	out := make([]float32, frames*channels)
	for ch, sub := range f.Subframes {
		for i, v := range sub.Samples {
			out[i*channels+ch] = float32(v) * scale
		}
	}
	return audio.Frame{SampleRate: rate, Channels: channels, Float: out}, nil
}

func (d *decoder) Reset() {}
