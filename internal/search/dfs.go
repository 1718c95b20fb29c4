package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// DFS is the backtracking depth-bounded depth-first strategy. It requires
// the Snapshotter capability: every tree node snapshots before stepping and
// restores before trying the alternate branch.
type DFS struct {
	// Logger receives debug output. Defaults to a no-op logger.
	Logger *slog.Logger

	// ProgressEvery controls how often a progress event is emitted, in
	// explored nodes. Zero disables intermediate progress.
	ProgressEvery int
}

// NewDFS creates the strategy with default settings.
func NewDFS() *DFS {
	return &DFS{
		Logger:        logging.NewNop(),
		ProgressEvery: 25000,
	}
}

// Name implements ports.Strategy.
func (d *DFS) Name() string { return "backtracking" }

// Search explores the decision tree rooted at the simulator's current state.
// At each frame the idle branch is tried before the engage branch, which
// fixes a deterministic search order: the first run found is the
// lexicographically smallest under idle < engage.
func (d *DFS) Search(ctx context.Context, drv ports.Driver, budget domain.SearchBudget, progress ports.ProgressFunc) (domain.Outcome, error) {
	stats := domain.SearchStats{}

	// Capability and readiness checks happen before any budget is consumed.
	err := drv.Do(ctx, func(sim ports.Simulator) error {
		if !sim.Ready() {
			return domain.ErrNotReady
		}
		if !ports.SupportsSnapshot(sim) {
			return domain.ErrSnapshotUnsupported
		}
		return nil
	})
	if errors.Is(err, domain.ErrNotReady) {
		out := domain.NotFound(domain.ReasonNotReady)
		out.Stats = stats
		return out, nil
	}
	if err != nil {
		return domain.Outcome{}, err
	}

	var (
		seq      = make(domain.DecisionSequence, 0, budget.MaxFrames)
		result   domain.DecisionSequence
		found    bool
		timedOut bool
	)

	var walk func(frame int) error
	walk = func(frame int) error {
		stats.NodesExplored++
		if progress != nil && d.ProgressEvery > 0 && stats.NodesExplored%d.ProgressEvery == 0 {
			progress(&domain.SearchEvent{
				Timestamp: time.Now(),
				Type:      domain.EventProgress,
				Strategy:  d.Name(),
				Message:   fmt.Sprintf("Searching... %d positions explored", stats.NodesExplored),
				Nodes:     stats.NodesExplored,
				Frames:    frame,
			})
		}
		if budget.Expired(time.Now()) {
			timedOut = true
			return nil
		}

		var success, failure bool
		if err := drv.Do(ctx, func(sim ports.Simulator) error {
			success = sim.Success()
			failure = sim.Failure()
			return nil
		}); err != nil {
			return err
		}
		if success {
			result = seq.Clone()
			found = true
			return nil
		}
		if failure || frame >= budget.MaxFrames {
			// Dead end: backtrack.
			return nil
		}

		var token ports.SnapshotToken
		if err := drv.Do(ctx, func(sim ports.Simulator) error {
			var err error
			token, err = sim.(ports.Snapshotter).Snapshot()
			return err
		}); err != nil {
			return err
		}

		for _, engage := range [2]domain.FrameInput{false, true} {
			if err := drv.Do(ctx, func(sim ports.Simulator) error {
				return sim.Step(engage)
			}); err != nil {
				return err
			}
			stats.FramesStepped++
			seq = append(seq, engage)

			if err := walk(frame + 1); err != nil {
				return err
			}
			if found || timedOut {
				// Short-circuit upward without restoring.
				return nil
			}

			seq = seq[:len(seq)-1]
			if err := drv.Do(ctx, func(sim ports.Simulator) error {
				return sim.(ports.Snapshotter).Restore(token)
			}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(0); err != nil {
		return domain.Outcome{}, err
	}

	switch {
	case found:
		d.Logger.Debug("run found", "frames", len(result), "nodes", stats.NodesExplored)
		out := domain.Found(result)
		out.Stats = stats
		return out, nil
	case timedOut:
		out := domain.NotFound(domain.ReasonTimeout)
		out.Stats = stats
		return out, nil
	default:
		out := domain.NotFound(domain.ReasonExhausted)
		out.Stats = stats
		return out, nil
	}
}

var _ ports.Strategy = (*DFS)(nil)
