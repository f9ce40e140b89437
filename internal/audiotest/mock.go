// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"io"
	"math"
	"sync"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
)

// Magic is the default signature matched by MockFormat.
const Magic = "MOCK"

// Step scripts one NextPacket call of a MockDemuxer.
type Step struct {
	// ReadErr is returned by NextPacket instead of a packet.
	ReadErr error
	// Track is the packet's track id. Zero means the default track.
	Track uint32
	// DecodeErrs are returned by successive Decode calls for this packet
	// before Frame is returned.
	DecodeErrs []error
	Frame      audio.Frame
}

// MockFormat is a scripted codec.Format for driving the decode pipeline.
type MockFormat struct {
	FormatName string
	Magic      string
	Exts       []string

	Track      codec.Track
	NoTrack    bool
	OpenErr    error
	DecoderErr error
	Steps      []Step

	mtx    sync.Mutex
	resets int
	opens  int
}

// NewMockFormat returns a MockFormat with a default track 1 at rate.
func NewMockFormat(rate, channels int, steps ...Step) *MockFormat {
	return &MockFormat{
		FormatName: "mock",
		Magic:      Magic,
		Exts:       []string{"mock"},
		Track:      codec.Track{ID: 1, SampleRate: rate, Channels: channels, Codec: "mock"},
		Steps:      steps,
	}
}

func (m *MockFormat) Name() string         { return m.FormatName }
func (m *MockFormat) Extensions() []string { return m.Exts }

func (m *MockFormat) Match(head []byte) bool {
	return bytes.HasPrefix(head, []byte(m.Magic))
}

func (m *MockFormat) Open(rs io.ReadSeeker) (codec.Demuxer, error) {
	m.mtx.Lock()
	m.opens++
	m.mtx.Unlock()

	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return &mockDemuxer{format: m}, nil
}

// Resets returns how many times decoders of m were reset.
func (m *MockFormat) Resets() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.resets
}

// Opens returns how many times m was opened.
func (m *MockFormat) Opens() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.opens
}

type mockPacket struct {
	track uint32
	step  int
}

func (p mockPacket) TrackID() uint32 { return p.track }

type mockDemuxer struct {
	format *MockFormat
	next   int
}

func (d *mockDemuxer) DefaultTrack() (codec.Track, bool) {
	return d.format.Track, !d.format.NoTrack
}

func (d *mockDemuxer) NextPacket() (codec.Packet, error) {
	if d.next >= len(d.format.Steps) {
		return nil, io.EOF
	}
	i := d.next
	d.next++

	s := d.format.Steps[i]
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	track := s.Track
	if track == 0 {
		track = d.format.Track.ID
	}
	return mockPacket{track: track, step: i}, nil
}

func (d *mockDemuxer) NewDecoder(t codec.Track) (codec.Decoder, error) {
	if d.format.DecoderErr != nil {
		return nil, d.format.DecoderErr
	}
	return &mockDecoder{format: d.format, attempts: make(map[int]int)}, nil
}

type mockDecoder struct {
	format   *MockFormat
	attempts map[int]int
}

func (d *mockDecoder) Decode(p codec.Packet) (audio.Frame, error) {
	mp := p.(mockPacket)
	s := d.format.Steps[mp.step]

	n := d.attempts[mp.step]
	d.attempts[mp.step] = n + 1
	if n < len(s.DecodeErrs) {
		return audio.Frame{}, s.DecodeErrs[n]
	}
	return s.Frame, nil
}

func (d *mockDecoder) Reset() {
	d.format.mtx.Lock()
	d.format.resets++
	d.format.mtx.Unlock()
}

// Sine returns frames of an interleaved sine tone with the same signal on
// every channel.
func Sine(rate, channels, frames int, freq, amp float64) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		v := float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for ch := range channels {
			out[i*channels+ch] = v
		}
	}
	return out
}

// Constant returns frames of interleaved samples all equal to v.
func Constant(channels, frames int, v float32) []float32 {
	out := make([]float32, frames*channels)
	for i := range out {
		out[i] = v
	}
	return out
}

// Packets splits interleaved samples into Steps of at most size frames.
func Packets(rate, channels, size int, samples []float32) []Step {
	var steps []Step
	chunk := size * channels
	for off := 0; off < len(samples); off += chunk {
		end := min(off+chunk, len(samples))
		steps = append(steps, Step{Frame: audio.Frame{
			SampleRate: rate,
			Channels:   channels,
			Float:      samples[off:end],
		}})
	}
	return steps
}
