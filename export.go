package macroforge

import (
	"context"
	"fmt"
	"time"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
	"github.com/entity12208/macroforge/pkg/replay"
)

// Export encodes the most recently found run into an artifact named after
// the level. If an artifact store is configured, the artifact is persisted
// under its filename before being returned.
//
// Returns domain.ErrNoRun when no search has produced a run yet.
func (c *Coordinator) Export(ctx context.Context, levelName string) (*domain.Artifact, error) {
	c.mu.Lock()
	run := c.lastRun.Clone()
	c.mu.Unlock()
	if run == nil {
		return nil, domain.ErrNoRun
	}

	data, err := c.encoder.Encode(run)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run: %w", err)
	}
	artifact := &domain.Artifact{
		Data:     data,
		Filename: replay.Filename(levelName, time.Now(), c.encoder.Extension()),
	}

	if c.store != nil {
		if err := c.store.Save(ctx, artifact.Filename, artifact); err != nil {
			return nil, fmt.Errorf("failed to persist artifact: %w", err)
		}
	}
	c.logger.Info("run exported", "filename", artifact.Filename, "bytes", len(artifact.Data))
	return artifact, nil
}

// Replay resets the simulation and plays seq frame-by-frame, returning the
// frame index at which success was detected, or -1 if the sequence ends (or
// fails) without reaching it. This is the determinism check: a found run
// replayed against a freshly reset instance must reproduce its success.
//
// Replay drives the simulation, so it is mutually exclusive with Solve.
func (c *Coordinator) Replay(ctx context.Context, seq domain.DecisionSequence) (int, error) {
	c.mu.Lock()
	if c.searching {
		c.mu.Unlock()
		return -1, domain.ErrSearchInFlight
	}
	c.searching = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.searching = false
		c.mu.Unlock()
	}()

	successFrame := -1
	err := c.loop.Do(ctx, func(sim ports.Simulator) error {
		if !sim.Ready() {
			return domain.ErrNotReady
		}
		if err := sim.Reset(); err != nil {
			return err
		}
		for i, in := range seq {
			if err := sim.Step(in); err != nil {
				return err
			}
			if sim.Success() {
				successFrame = i
				return nil
			}
			if sim.Failure() {
				return nil
			}
		}
		return nil
	})
	return successFrame, err
}

// Verify decodes an artifact record and replays it, reporting whether the
// run still reaches the success state.
func (c *Coordinator) Verify(ctx context.Context, data []byte) (bool, error) {
	seq, err := c.encoder.Decode(data)
	if err != nil {
		return false, err
	}
	frame, err := c.Replay(ctx, seq)
	if err != nil {
		return false, err
	}
	return frame >= 0, nil
}
