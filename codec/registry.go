// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// HeadSize is the number of leading bytes handed to Format.Match.
const HeadSize = 64

// Registry holds formats in registration order. Probing walks them in that
// order, so more specific signatures must be registered first.
type Registry struct {
	formats []Format

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		mtx: &sync.Mutex{},
	}
}

// Register adds f. A format with the same name is replaced in place.
func (r *Registry) Register(f Format) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for i, have := range r.formats {
		if have.Name() == f.Name() {
			r.formats[i] = f
			return
		}
	}
	r.formats = append(r.formats, f)
}

// Get returns the format registered under name.
func (r *Registry) Get(name string) (Format, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, f := range r.formats {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Formats returns a snapshot of the registered formats.
func (r *Registry) Formats() []Format {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.formats)
}

// Probe opens data with the first format that matches it. Formats whose
// extension matches the hint are tried first; the rest are sniffed by their
// magic bytes. Probing is never retried.
func (r *Registry) Probe(data []byte, hint Hint) (Format, Demuxer, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", ErrProbe)
	}

	head := data[:min(len(data), HeadSize)]
	formats := r.Formats()

	ext := strings.ToLower(strings.TrimPrefix(hint.Extension, "."))
	if ext != "" {
		slices.SortStableFunc(formats, func(a, b Format) int {
			ha, hb := hasExt(a, ext), hasExt(b, ext)
			switch {
			case ha && !hb:
				return -1
			case hb && !ha:
				return 1
			}
			return 0
		})
	}

	for _, f := range formats {
		if !f.Match(head) {
			continue
		}
		d, err := f.Open(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrProbe, f.Name(), err)
		}
		return f, d, nil
	}

	return nil, nil, ErrProbe
}

func hasExt(f Format, ext string) bool {
	return slices.Contains(f.Extensions(), ext)
}
