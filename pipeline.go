// SPDX-License-Identifier: EPL-2.0

package pcmdecoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
	"github.com/ik5/pcmdecoder/internal/observe"
	"github.com/ik5/pcmdecoder/resample"
)

// result is the output of one pipeline run.
type result struct {
	buf      *audio.PCMBuffer
	format   string
	srcRate  int
	channels int
	frames   int
}

// run probes data, drains its default track and produces the output buffer.
// It touches no session state besides the logger and metrics.
func (s *Session) run(ctx context.Context, data []byte, hint codec.Hint) (*result, error) {
	f, demux, err := s.registry.Probe(data, hint)
	if err != nil {
		return nil, err
	}

	res := &result{format: f.Name()}
	log := s.log.With(slog.String("format", res.format))

	track, ok := demux.DefaultTrack()
	if !ok {
		return res, codec.ErrNoTrack
	}
	dec, err := demux.NewDecoder(track)
	if err != nil {
		return res, fmt.Errorf("%w: %w", codec.ErrDecoderInit, err)
	}

	rate := track.SampleRate
	if rate <= 0 {
		rate = s.cfg.TargetRate
	}

	acc := audio.NewAccumulator(s.cfg.Mixdown)
packets:
	for {
		pkt, err := demux.NextPacket()
		if err != nil {
			if isEOS(err) {
				break
			}
			if errors.Is(err, codec.ErrResetRequired) {
				log.Debug("demuxer requested decoder reset")
				s.metrics.DecoderResets.Add(ctx, 1)
				dec.Reset()
				continue
			}
			if codec.IsTransient(err) {
				log.Debug("skipping corrupt packet", slog.Any("error", err))
				s.metrics.RecordDrop(ctx, observe.DropTransient)
				continue
			}
			return res, fmt.Errorf("%w: %w", ErrIO, err)
		}

		if pkt.TrackID() != track.ID {
			log.Debug("skipping packet of foreign track", slog.Uint64("track", uint64(pkt.TrackID())))
			s.metrics.RecordDrop(ctx, observe.DropForeignTrack)
			continue
		}

		frame, err := dec.Decode(pkt)
		if errors.Is(err, codec.ErrResetRequired) {
			log.Debug("decoder reset, retrying packet")
			s.metrics.DecoderResets.Add(ctx, 1)
			dec.Reset()
			frame, err = dec.Decode(pkt)
			if errors.Is(err, codec.ErrResetRequired) {
				log.Debug("dropping packet after repeated reset request")
				s.metrics.RecordDrop(ctx, observe.DropReset)
				continue
			}
		}
		switch {
		case err == nil:
		case codec.IsTransient(err):
			log.Debug("dropping corrupt packet", slog.Any("error", err))
			s.metrics.RecordDrop(ctx, observe.DropTransient)
			continue
		case isEOS(err):
			break packets
		default:
			return res, fmt.Errorf("%w: %w", ErrIO, err)
		}

		if frame.Channels <= 0 {
			log.Debug("skipping frame without channels")
			s.metrics.RecordDrop(ctx, observe.DropZeroChannels)
			continue
		}
		if frame.SampleRate > 0 && frame.SampleRate != rate {
			if acc.Frames() > 0 {
				// The whole stream is resampled at the last rate seen.
				log.Warn("sample rate changed mid-stream",
					slog.Int("from", rate), slog.Int("to", frame.SampleRate))
			}
			rate = frame.SampleRate
		}

		if err := acc.Add(frame); err != nil {
			return res, err
		}
	}

	res.srcRate = rate
	res.channels = acc.Channels()
	res.frames = acc.Frames()

	var mono []float32
	if s.cfg.Mixdown == audio.MixBeforeResample {
		mono, err = resample.Mono(acc.Mono(), rate, s.cfg.TargetRate)
	} else {
		mono, err = resample.Channels(acc.Runs(), rate, s.cfg.TargetRate)
	}
	if err != nil {
		return res, err
	}

	res.buf = &audio.PCMBuffer{SampleRate: s.cfg.TargetRate, Format: s.cfg.Output}
	if s.cfg.Output == audio.Int16 {
		res.buf.Int = audio.QuantizeSlice(nil, mono)
	} else {
		res.buf.Float = mono
	}
	return res, nil
}

func isEOS(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
