// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"io"

	"github.com/ik5/pcmdecoder/audio"
)

// Track describes one elementary stream of a container.
type Track struct {
	ID uint32
	// SampleRate in Hz, 0 when the container does not declare it.
	SampleRate int
	Channels   int
	Codec      string
}

// Packet is one compressed unit read from a Demuxer.
type Packet interface {
	// TrackID is the id of the track the packet belongs to.
	TrackID() uint32
}

// Demuxer yields packets of an opened container.
type Demuxer interface {
	// DefaultTrack returns the track to decode. ok is false when the
	// container holds no decodable track.
	DefaultTrack() (t Track, ok bool)

	// NextPacket returns the next packet in container order. io.EOF and
	// io.ErrUnexpectedEOF mark end of stream. ErrResetRequired asks the
	// caller to reset its decoder before reading again.
	NextPacket() (Packet, error)

	// NewDecoder builds a decoder for t.
	NewDecoder(t Track) (Decoder, error)
}

// Decoder turns packets into frames.
type Decoder interface {
	// Decode decodes p. A *DecodeError marks a corrupt packet that may be
	// dropped. ErrResetRequired asks for Reset and another attempt.
	Decode(p Packet) (audio.Frame, error)

	// Reset discards decoder state carried between packets.
	Reset()
}

// Format is a container/codec pair that can be probed and opened.
type Format interface {
	Name() string
	// Extensions lists lower-case file extensions without the dot.
	Extensions() []string
	// Match reports whether head, the first bytes of the stream, carries the
	// format's signature.
	Match(head []byte) bool
	Open(rs io.ReadSeeker) (Demuxer, error)
}

// Hint narrows probing. The zero value means no hint.
type Hint struct {
	// Extension with or without the leading dot, case insensitive.
	Extension string
}
