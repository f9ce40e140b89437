// SPDX-License-Identifier: EPL-2.0

// Package ffi adapts a Session to the pointer-and-length contract of the
// shared library. No operation panics across the boundary; failures are
// reported as false or 0 and logged.
package ffi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/ik5/pcmdecoder"
	"github.com/ik5/pcmdecoder/audio"
	"github.com/ik5/pcmdecoder/internal/config"
)

// ErrNullPointer is logged when a pointer argument is nil.
var ErrNullPointer = errors.New("null pointer argument")

// ErrNegativeLength is logged when a length argument is negative.
var ErrNegativeLength = errors.New("negative length argument")

// API is the boundary over one session.
type API struct {
	session *pcmdecoder.Session
	err     error // set when the session could not be created
	log     *slog.Logger
}

// New returns an API over s.
func New(s *pcmdecoder.Session, log *slog.Logger) *API {
	if log == nil {
		log = slog.Default()
	}
	return &API{session: s, log: log}
}

var defaultAPI = sync.OnceValue(func() *API {
	cfg, err := config.LoadEnv()
	if err != nil {
		log := slog.Default()
		log.Error("pcmdecoder: load configuration", slog.String("env", config.EnvConfig), slog.Any("error", err))
		return &API{err: err, log: log}
	}
	log := config.NewLogger(cfg.Log)
	return newFromConfig(cfg, log)
})

func newFromConfig(cfg *config.Config, log *slog.Logger) *API {
	pc, err := cfg.SessionConfig()
	if err == nil {
		var s *pcmdecoder.Session
		if s, err = pcmdecoder.New(pc, pcmdecoder.WithLogger(log)); err == nil {
			return New(s, log)
		}
	}
	log.Error("pcmdecoder: create session", slog.Any("error", err))
	return &API{err: err, log: log}
}

// Default returns the process-wide API, creating its session on first use
// from the file named by PCMDECODER_CONFIG.
func Default() *API { return defaultAPI() }

// Decode decodes n bytes at data and caches the result.
func (a *API) Decode(data unsafe.Pointer, n int) (ok bool) {
	defer a.guard("decode", &ok)

	if data == nil {
		return a.fail("decode", ErrNullPointer)
	}
	if n < 0 {
		return a.fail("decode", fmt.Errorf("%w: %d", ErrNegativeLength, n))
	}
	s, err := a.get()
	if err != nil {
		return a.fail("decode", err)
	}

	// The pipeline does not retain its input, so the caller's memory is
	// read in place.
	if err := s.Decode(unsafe.Slice((*byte)(data), n)); err != nil {
		return a.fail("decode", err)
	}
	return true
}

// Size returns the element count of the cached buffer, or 0.
func (a *API) Size() (n int) {
	defer a.guard("get_size", nil)

	s, err := a.get()
	if err != nil {
		a.fail("get_size", err)
		return 0
	}
	if s.Poisoned() {
		a.fail("get_size", pcmdecoder.ErrPoisoned)
		return 0
	}
	return s.Size()
}

// SampleSize returns the byte width of one element, or 0.
func (a *API) SampleSize() (n int) {
	defer a.guard("sample_size", nil)

	s, err := a.get()
	if err != nil {
		a.fail("sample_size", err)
		return 0
	}
	return s.SampleSize()
}

// Copy writes the cached buffer to dst, which must hold Size() elements.
func (a *API) Copy(dst unsafe.Pointer) (ok bool) {
	defer a.guard("copy", &ok)

	s, err := a.get()
	if err != nil {
		return a.fail("copy", err)
	}
	return a.copyN("copy", s, dst, s.Size())
}

// CopyN writes the cached buffer to dst if it fits in capacity elements.
func (a *API) CopyN(dst unsafe.Pointer, capacity int) (ok bool) {
	defer a.guard("copy_n", &ok)

	s, err := a.get()
	if err != nil {
		return a.fail("copy_n", err)
	}
	if capacity < 0 {
		return a.fail("copy_n", fmt.Errorf("%w: %d", ErrNegativeLength, capacity))
	}
	return a.copyN("copy_n", s, dst, capacity)
}

func (a *API) copyN(op string, s *pcmdecoder.Session, dst unsafe.Pointer, capacity int) bool {
	if dst == nil {
		return a.fail(op, ErrNullPointer)
	}

	var err error
	if s.Config().Output == audio.Int16 {
		_, err = s.CopyInt16(unsafe.Slice((*int16)(dst), capacity))
	} else {
		_, err = s.CopyFloat32(unsafe.Slice((*float32)(dst), capacity))
	}
	if err != nil {
		return a.fail(op, err)
	}
	return true
}

// Free releases the cached buffer.
func (a *API) Free() (ok bool) {
	defer a.guard("free", &ok)

	s, err := a.get()
	if err != nil {
		return a.fail("free", err)
	}
	if err := s.Free(); err != nil {
		return a.fail("free", err)
	}
	return true
}

func (a *API) get() (*pcmdecoder.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	if a.session == nil {
		return nil, ErrNullPointer
	}
	return a.session, nil
}

func (a *API) fail(op string, err error) bool {
	a.log.Error("pcmdecoder: "+op+" failed", slog.Any("error", err))
	return false
}

// guard converts a panic into a failed result. ok may be nil for
// operations returning a count, whose zero value already signals failure.
func (a *API) guard(op string, ok *bool) {
	r := recover()
	if r == nil {
		return
	}
	a.log.Error("pcmdecoder: "+op+" panicked", slog.Any("panic", r))
	if ok != nil {
		*ok = false
	}
}
