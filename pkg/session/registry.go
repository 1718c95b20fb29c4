package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/entity12208/macroforge"
	"github.com/entity12208/macroforge/internal/logging"
)

// Factory builds a coordinator (and its simulation) for a level identity.
type Factory func(level string) (*macroforge.Coordinator, error)

// entry holds a live coordinator and its reference count.
type entry struct {
	coord *macroforge.Coordinator
	refs  int
}

// Registry hands out one shared Coordinator per level, creating it on first
// use and closing it when the last holder releases it.
type Registry struct {
	factory Factory
	logger  *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry around the given factory.
func NewRegistry(factory Factory, opts ...Option) *Registry {
	r := &Registry{
		factory: factory,
		logger:  logging.NewNop(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the coordinator for the level, creating it if needed. The
// returned release function MUST be called when the caller is done; the
// coordinator is closed once no holders remain.
func (r *Registry) Acquire(level string) (*macroforge.Coordinator, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[level]
	if !ok {
		coord, err := r.factory(level)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create solver for level %q: %w", level, err)
		}
		e = &entry{coord: coord}
		r.entries[level] = e
		r.logger.Debug("solver created", "level", level)
	}
	e.refs++

	var once sync.Once
	release := func() {
		once.Do(func() { r.release(level) })
	}
	return e.coord, release, nil
}

// release decrements the reference count and tears the entry down at zero.
func (r *Registry) release(level string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[level]
	if !ok {
		return // Should not happen if paired correctly
	}
	e.refs--
	if e.refs <= 0 {
		delete(r.entries, level)
		e.coord.Close()
		r.logger.Debug("solver closed", "level", level)
	}
}

// Active returns the number of live entries, for introspection and tests.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
