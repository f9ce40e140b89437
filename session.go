// SPDX-License-Identifier: EPL-2.0

package pcmdecoder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/codec"
	"github.com/ik5/pcmdecoder/internal/observe"
)

// Session is one decode pipeline with its buffer slot.
//
// The slot holds at most one PCMBuffer. A successful decode replaces it;
// a failed decode leaves it untouched; Free empties it. All slot access is
// serialised by the session lock. Decoding runs before the lock is taken, so
// concurrent decodes overlap and the last one to finish wins the slot.
type Session struct {
	id       uuid.UUID
	cfg      Config
	registry *codec.Registry
	log      *slog.Logger
	metrics  *observe.Metrics

	mtx      sync.Mutex
	slot     *audio.PCMBuffer
	poisoned bool
}

type options struct {
	logger   *slog.Logger
	registry *codec.Registry
	meter    metric.MeterProvider
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegistry sets the formats used for probing. Defaults to
// DefaultRegistry().
func WithRegistry(r *codec.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithMeterProvider records pipeline metrics on mp instead of the global
// provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meter = mp }
}

// New returns an empty session for cfg.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	metrics := observe.DefaultMetrics()
	if o.meter != nil {
		var err error
		if metrics, err = observe.NewMetrics(o.meter); err != nil {
			return nil, fmt.Errorf("pcmdecoder: metrics: %w", err)
		}
	}

	id := uuid.New()
	return &Session{
		id:       id,
		cfg:      cfg,
		registry: o.registry,
		log:      o.logger.With(slog.String("session", id.String())),
		metrics:  metrics,
	}, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id.String() }

// Config returns the pipeline configuration.
func (s *Session) Config() Config { return s.cfg }

// Decode runs the pipeline over data, probing the format by content.
func (s *Session) Decode(data []byte) error {
	return s.DecodeHint(data, codec.Hint{})
}

// DecodeHint runs the pipeline over data and caches the result. Formats
// matching hint are probed first. On error the slot is left unchanged.
func (s *Session) DecodeHint(data []byte, hint codec.Hint) error {
	if s.Poisoned() {
		return ErrPoisoned
	}

	ctx := context.Background()
	start := time.Now()

	res, err := s.run(ctx, data, hint)

	format := "unknown"
	if res != nil {
		format = res.format
	}
	if err != nil {
		s.metrics.RecordDecode(ctx, format, "error", time.Since(start))
		s.log.Debug("decode failed", slog.String("format", format), slog.Any("error", err))
		return err
	}

	err = s.withLock(func() error {
		prev := s.slot.Len()
		s.slot = res.buf
		s.metrics.RecordSlot(ctx, prev, res.buf.Len())
		return nil
	})
	if err != nil {
		s.metrics.RecordDecode(ctx, format, "error", time.Since(start))
		return err
	}

	s.metrics.RecordDecode(ctx, format, "ok", time.Since(start))
	s.log.Info("decode completed",
		slog.String("format", format),
		slog.Int("source_rate", res.srcRate),
		slog.Int("channels", res.channels),
		slog.Int("frames", res.frames),
		slog.Int("samples", res.buf.Len()),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// DecodeReader reads r to the end and decodes it.
func (s *Session) DecodeReader(r io.Reader, hint codec.Hint) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return s.DecodeHint(data, hint)
}

// DecodeFile decodes the file at path, using its extension as the hint.
func (s *Session) DecodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return s.DecodeHint(data, codec.Hint{Extension: filepath.Ext(path)})
}

// Size returns the element count of the cached buffer. It is 0 when the
// slot is empty or the session is poisoned.
func (s *Session) Size() int {
	var n int
	_ = s.withLock(func() error {
		n = s.slot.Len()
		return nil
	})
	return n
}

// SampleSize returns the byte width of one output sample.
func (s *Session) SampleSize() int { return s.cfg.Output.Size() }

// Buffer returns a copy of the cached buffer.
func (s *Session) Buffer() (*audio.PCMBuffer, error) {
	var buf *audio.PCMBuffer
	err := s.withLock(func() error {
		if s.slot == nil {
			return ErrEmpty
		}
		buf = s.slot.Clone()
		return nil
	})
	return buf, err
}

// CopyFloat32 copies the cached float32 buffer into dst and returns the
// number of samples written.
func (s *Session) CopyFloat32(dst []float32) (int, error) {
	var n int
	err := s.withLock(func() error {
		if err := s.checkCopy(audio.Float32, len(dst)); err != nil {
			return err
		}
		n = copy(dst, s.slot.Float)
		return nil
	})
	return n, err
}

// CopyInt16 copies the cached int16 buffer into dst and returns the number
// of samples written.
func (s *Session) CopyInt16(dst []int16) (int, error) {
	var n int
	err := s.withLock(func() error {
		if err := s.checkCopy(audio.Int16, len(dst)); err != nil {
			return err
		}
		n = copy(dst, s.slot.Int)
		return nil
	})
	return n, err
}

func (s *Session) checkCopy(format audio.SampleFormat, capacity int) error {
	if s.slot == nil {
		return ErrEmpty
	}
	if s.slot.Format != format {
		return fmt.Errorf("%w: buffer holds %s, destination is %s", ErrSampleFormat, s.slot.Format, format)
	}
	if capacity < s.slot.Len() {
		return fmt.Errorf("%w: need %d samples, have room for %d", ErrShortBuffer, s.slot.Len(), capacity)
	}
	return nil
}

// Free empties the slot. It is safe to call on an empty slot.
func (s *Session) Free() error {
	return s.withLock(func() error {
		if s.slot == nil {
			return nil
		}
		s.metrics.RecordSlot(context.Background(), s.slot.Len(), 0)
		s.slot = nil
		return nil
	})
}

// Poisoned reports whether a panic occurred while the lock was held.
func (s *Session) Poisoned() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.poisoned
}

// withLock runs fn holding the session lock. A panic in fn poisons the
// session and is re-raised.
func (s *Session) withLock(fn func() error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.poisoned {
		return ErrPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			s.log.Error("panic while holding session lock", slog.Any("panic", r))
			panic(r)
		}
	}()

	return fn()
}
