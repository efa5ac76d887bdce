package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"inno8-site/internal/backend"
	xlog "inno8-site/internal/log"
)

// State is the lifecycle state of a Store.
type State int32

const (
	// StateDefault means the hardcoded palette is being served.
	StateDefault State = iota
	// StateResolved means the backend palette has been committed.
	StateResolved
)

// String returns the state name
func (s State) String() string {
	if s == StateResolved {
		return "resolved"
	}
	return "default"
}

// EndpointPalette serves the site palette on the backend.
const EndpointPalette = "/color-palette"

// PaletteSource fetches the raw palette from the configuration endpoint.
type PaletteSource interface {
	FetchPalette(ctx context.Context) (Palette, error)
}

// JSONGetter is the slice of the backend client the remote source needs.
type JSONGetter interface {
	GetJSON(ctx context.Context, path string, out any) error
}

// RemoteSource reads the palette from a backend endpoint.
type RemoteSource struct {
	Client   JSONGetter
	Endpoint string
}

// FetchPalette implements PaletteSource. Anything but a JSON object is
// reported as backend.ErrMalformed.
func (s RemoteSource) FetchPalette(ctx context.Context) (Palette, error) {
	var raw json.RawMessage
	if err := s.Client.GetJSON(ctx, s.Endpoint, &raw); err != nil {
		return Palette{}, err
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 || body[0] != '{' {
		return Palette{}, fmt.Errorf("%s: %w: expected a palette object", s.Endpoint, backend.ErrMalformed)
	}
	var p Palette
	if err := json.Unmarshal(body, &p); err != nil {
		return Palette{}, fmt.Errorf("%s: %w: %v", s.Endpoint, backend.ErrMalformed, err)
	}
	return p, nil
}

// Store holds the process-wide palette. It has exactly one mutation entry
// point (Resolve) which runs at most once; reads are lock-free snapshots.
type Store struct {
	once    sync.Once
	current atomic.Pointer[Palette]
	state   atomic.Int32
}

// NewStore returns a store serving DefaultPalette.
func NewStore() *Store {
	s := &Store{}
	p := DefaultPalette
	s.current.Store(&p)
	MetricPaletteState.Set(float64(StateDefault))
	return s
}

// Resolve fetches the palette once. On success every slot is validated and
// the whole palette is swapped in; on failure the default stays for good.
// Calls after the first are no-ops and report the state reached.
func (s *Store) Resolve(ctx context.Context, src PaletteSource) State {
	s.once.Do(func() {
		l := xlog.FromContext(ctx, "theme")

		raw, err := src.FetchPalette(ctx)
		if err != nil {
			MetricPaletteFetches.WithLabelValues("failed").Inc()
			l.Warn().Err(err).Msg("palette fetch failed, keeping default palette")
			return
		}

		p := raw.Normalize()
		s.current.Store(&p)
		s.state.Store(int32(StateResolved))
		MetricPaletteFetches.WithLabelValues("resolved").Inc()
		MetricPaletteState.Set(float64(StateResolved))
		l.Debug().
			Str("primary", p.Primary).
			Str("secondary", p.Secondary).
			Str("accent", p.Accent).
			Str("light", p.Light).
			Msg("palette resolved")
	})
	return s.State()
}

// Snapshot returns the latest committed palette.
func (s *Store) Snapshot() Palette {
	return *s.current.Load()
}

// State returns the store's lifecycle state.
func (s *Store) State() State {
	return State(s.state.Load())
}
