package macroforge

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/internal/search"
	"github.com/entity12208/macroforge/internal/simloop"
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/observability"
	"github.com/entity12208/macroforge/pkg/ports"
	"github.com/entity12208/macroforge/pkg/replay"
)

// RestorePolicy decides what happens to the simulation after a search ends
// without a run. Hosts that reuse the handle for another attempt want a
// reset; hosts that inspect the failing state do not.
type RestorePolicy int

const (
	// RestoreToStart resets the simulation after a NotFound outcome.
	RestoreToStart RestorePolicy = iota
	// LeaveAsIs leaves the simulation at whatever state the last explored
	// branch produced.
	LeaveAsIs
)

// Coordinator owns one simulation handle and runs searches against it. At
// most one search is in flight per Coordinator; concurrent Solve calls are
// rejected with domain.ErrSearchInFlight. The found run and export state
// live on the Coordinator, not in package globals.
type Coordinator struct {
	loop     *simloop.Loop
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	metrics  *observability.Metrics
	encoder  ports.Encoder
	store    ports.ArtifactStore
	strategy ports.Strategy
	restore  RestorePolicy
	tuning   domain.TrialTuning

	timeout   time.Duration
	maxFrames int
	maxTrials int
	seed      uint64
	seeded    bool

	broker progressBroker

	mu        sync.Mutex
	searching bool
	lastRun   domain.DecisionSequence
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout sets the wall-clock budget per search.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithMaxFrames caps the search depth and trial length.
func WithMaxFrames(n int) Option {
	return func(c *Coordinator) { c.maxFrames = n }
}

// WithMaxTrials caps the randomized strategy's attempts.
func WithMaxTrials(n int) Option {
	return func(c *Coordinator) { c.maxTrials = n }
}

// WithStrategy overrides automatic strategy selection. The coordinator wires
// logging and runtime defaults into a private copy, so the supplied value is
// never mutated; a strategy carrying its own random source still must not be
// shared by coordinators solving concurrently.
func WithStrategy(s ports.Strategy) Option {
	return func(c *Coordinator) { c.strategy = s }
}

// WithSeed fixes the randomized strategy's random source. Same seed, same
// trials, same outcome.
func WithSeed(seed uint64) Option {
	return func(c *Coordinator) {
		c.seed = seed
		c.seeded = true
	}
}

// WithTuning overrides the randomized strategy's draw ranges.
func WithTuning(t domain.TrialTuning) Option {
	return func(c *Coordinator) { c.tuning = t }
}

// WithEncoder sets the artifact codec. Defaults to the binary codec.
func WithEncoder(enc ports.Encoder) Option {
	return func(c *Coordinator) { c.encoder = enc }
}

// WithArtifactStore persists every export to the given store.
func WithArtifactStore(store ports.ArtifactStore) Option {
	return func(c *Coordinator) { c.store = store }
}

// WithLogger configures structured logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Coordinator) { c.hooks = hooks }
}

// WithMetrics records search outcomes to Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithRestorePolicy sets the post-NotFound simulation state policy.
func WithRestorePolicy(p RestorePolicy) Option {
	return func(c *Coordinator) { c.restore = p }
}

// New creates a Coordinator around the given simulator. The simulator is
// bound to a dedicated owning goroutine; the caller must not touch it
// directly afterwards.
func New(sim ports.Simulator, opts ...Option) *Coordinator {
	c := &Coordinator{
		loop:    simloop.New(sim),
		logger:  logging.NewNop(),
		encoder: replay.BinaryCodec{},
		restore: RestoreToStart,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close shuts down the owning goroutine. Idempotent.
func (c *Coordinator) Close() {
	c.loop.Close()
}

// Subscribe returns an order-preserving stream of human-readable progress
// messages. Each Solve emits intermediate updates and exactly one final
// message describing the outcome. A subscriber that stops draining loses its
// oldest buffered messages first; publishing never blocks the search. The
// returned cancel function releases the subscription and closes the channel.
func (c *Coordinator) Subscribe() (<-chan string, func()) {
	return c.broker.subscribe()
}

// LastRun returns a copy of the most recently found run, or nil.
func (c *Coordinator) LastRun() domain.DecisionSequence {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRun.Clone()
}

// Backtracking returns the snapshot-based depth-first strategy, for use with
// WithStrategy.
func Backtracking() ports.Strategy {
	return search.NewDFS()
}

// Randomized returns the trial strategy with a fixed seed, for use with
// WithStrategy.
func Randomized(seed uint64) ports.Strategy {
	return search.NewRandom(rand.New(rand.NewPCG(seed, seed)))
}

func (c *Coordinator) rng() *rand.Rand {
	seed := c.seed
	if !c.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}
