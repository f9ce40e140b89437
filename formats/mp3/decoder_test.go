// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/pcmdecoder/codec"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate   int
	samples      []int16 // PCM samples (16-bit)
	offset       int
	maxRead      int // bytes per Read, 0 for the whole buffer
	returnErrors bool
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples)*2 {
		return 0, io.EOF
	}

	raw := make([]byte, len(m.samples)*2)
	for i, s := range m.samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}

	n := len(buf)
	if m.maxRead > 0 {
		n = min(n, m.maxRead)
	}
	n = copy(buf[:n], raw[m.offset:])
	m.offset += n

	if m.offset >= len(raw) {
		return n, io.EOF
	}
	return n, nil
}

// drain reads every packet of d and decodes it.
func drain(t testing.TB, d *demuxer) []int16 {
	t.Helper()

	dec, err := d.NewDecoder(codec.Track{})
	if err != nil {
		t.Fatalf("NewDecoder() error = %v", err)
	}

	var out []int16
	for {
		p, err := d.NextPacket()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("NextPacket() error = %v", err)
		}
		f, err := dec.Decode(p)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if f.Channels != 2 || f.Len()%2 != 0 {
			t.Fatalf("frame = %d channels with %d samples", f.Channels, f.Len())
		}
		out = append(out, f.Int...)
	}
}

func TestFormat_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head []byte
		want bool
	}{
		{"id3", []byte("ID3\x04\x00"), true},
		{"mpeg1 sync", []byte{0xFF, 0xFB, 0x90, 0x00}, true},
		{"mpeg2 sync", []byte{0xFF, 0xF3, 0x90, 0x00}, true},
		{"no sync", []byte{0xFF, 0x00}, false},
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVE"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := (Format{}).Match(tt.head); got != tt.want {
				t.Errorf("Match(%x) = %v, want %v", tt.head, got, tt.want)
			}
		})
	}
}

func TestFormat_Open_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("This is not MP3 data"), {}} {
		if _, err := (Format{}).Open(bytes.NewReader(data)); !errors.Is(err, ErrNotMP3File) {
			t.Errorf("Open(%q) error = %v, want %v", data, err, ErrNotMP3File)
		}
	}
}

func TestDemuxer_Track(t *testing.T) {
	t.Parallel()

	d := newDemuxer(&mockMP3Reader{sampleRate: 44100})
	track, ok := d.DefaultTrack()
	if !ok {
		t.Fatal("DefaultTrack() ok = false")
	}
	want := codec.Track{SampleRate: 44100, Channels: 2, Codec: "mp3"}
	if track != want {
		t.Errorf("DefaultTrack() = %+v, want %+v", track, want)
	}

	if _, err := newDemuxer(&mockMP3Reader{}).NewDecoder(track); !errors.Is(err, ErrInvalidStream) {
		t.Errorf("NewDecoder() with zero rate error = %v, want %v", err, ErrInvalidStream)
	}
}

func TestDemuxer_Samples(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768, 1, -1, 100}

	tests := []struct {
		name    string
		maxRead int
	}{
		{"whole buffer", 0},
		{"odd reads", 3},
		{"sub-frame reads", 1},
		{"frame reads", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDemuxer(&mockMP3Reader{sampleRate: 44100, samples: samples, maxRead: tt.maxRead})
			got := drain(t, d)
			if len(got) != len(samples) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
			}
			for i := range samples {
				if got[i] != samples[i] {
					t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
				}
			}
		})
	}
}

func TestDemuxer_DropsPartialFrame(t *testing.T) {
	t.Parallel()

	// Three samples: one stereo frame and half of another.
	d := newDemuxer(&mockMP3Reader{sampleRate: 22050, samples: []int16{1, 2, 3}})
	got := drain(t, d)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("decoded %v, want [1 2]", got)
	}
}

func TestDemuxer_Packets(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*10000)
	d := newDemuxer(&mockMP3Reader{sampleRate: 44100, samples: samples})

	var packets int
	for {
		_, err := d.NextPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("NextPacket() error = %v", err)
		}
		packets++
	}
	if packets != 3 {
		t.Errorf("packets = %d, want 3", packets)
	}
}

func TestDemuxer_ReadError(t *testing.T) {
	t.Parallel()

	d := newDemuxer(&mockMP3Reader{sampleRate: 44100, returnErrors: true})
	_, err := d.NextPacket()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("NextPacket() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

type foreignPacket struct{}

func (foreignPacket) TrackID() uint32 { return 0 }

func TestDecoder_ForeignPacket(t *testing.T) {
	t.Parallel()

	dec, _ := newDemuxer(&mockMP3Reader{sampleRate: 44100}).NewDecoder(codec.Track{})
	if _, err := dec.Decode(foreignPacket{}); !codec.IsTransient(err) {
		t.Errorf("Decode(foreign) error = %v, want transient decode error", err)
	}
}

func BenchmarkDemuxer_FullRead(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i)
	}

	b.ReportAllocs()
	for b.Loop() {
		drain(b, newDemuxer(&mockMP3Reader{sampleRate: 44100, samples: samples}))
	}
}
