package macroforge

import (
	"context"
	"fmt"
	"time"

	"github.com/entity12208/macroforge/internal/search"
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// Solve runs one search to completion and returns its outcome. It blocks
// the calling goroutine; simulation access happens on the owning goroutine
// via the internal loop, one marshaled call at a time.
//
// A second Solve while one is in flight returns domain.ErrSearchInFlight.
// Cancel via ctx; cancellation is observed between frames, never mid-step.
func (c *Coordinator) Solve(ctx context.Context) (domain.Outcome, error) {
	c.mu.Lock()
	if c.searching {
		c.mu.Unlock()
		return domain.Outcome{}, domain.ErrSearchInFlight
	}
	c.searching = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.searching = false
		c.mu.Unlock()
	}()

	start := time.Now()
	budget := domain.NewBudget(c.timeout, c.maxFrames, c.maxTrials)

	strat, err := c.pickStrategy(ctx)
	if err != nil {
		c.broker.publish("Search aborted: " + err.Error())
		return domain.Outcome{}, err
	}

	c.logger.Info("search starting",
		"strategy", strat.Name(),
		"max_frames", budget.MaxFrames,
		"deadline", budget.Deadline,
	)
	c.emit(ctx, c.hooks.OnSearchStart, &domain.SearchEvent{
		Timestamp: start,
		Type:      domain.EventSearchStart,
		Strategy:  strat.Name(),
		Message:   "Searching...",
	})

	progress := func(ev *domain.SearchEvent) {
		c.emit(ctx, c.hooks.OnProgress, ev)
	}

	outcome, err := strat.Search(ctx, c.loop, budget, progress)
	elapsed := time.Since(start)
	if err != nil {
		// Outside the outcome taxonomy: a broken simulator or a canceled
		// context. The handle is tainted until externally reinitialized.
		c.logger.Error("search aborted", "error", err, "elapsed", elapsed)
		c.broker.publish("Search aborted: " + err.Error())
		return domain.Outcome{}, err
	}

	if c.metrics != nil {
		c.metrics.ObserveSearch(outcome, elapsed)
	}

	var final string
	if outcome.IsFound() {
		c.mu.Lock()
		c.lastRun = outcome.Sequence.Clone()
		c.mu.Unlock()
		c.broker.publish("Found run! Finalizing...")
		final = fmt.Sprintf("Found run (%d frames) in %s.", len(outcome.Sequence), elapsed.Round(time.Millisecond))
	} else {
		if c.restore == RestoreToStart && outcome.Reason != domain.ReasonNotReady {
			if rerr := c.loop.Do(ctx, func(sim ports.Simulator) error { return sim.Reset() }); rerr != nil {
				c.logger.Warn("failed to restore simulation after search", "error", rerr)
			}
		}
		final = fmt.Sprintf("No run found (%s).", outcome.Reason)
	}

	c.logger.Info("search finished",
		"found", outcome.IsFound(),
		"reason", string(outcome.Reason),
		"frames_stepped", outcome.Stats.FramesStepped,
		"elapsed", elapsed,
	)
	c.emit(ctx, c.hooks.OnOutcome, &domain.SearchEvent{
		Timestamp: time.Now(),
		Type:      domain.EventOutcome,
		Strategy:  strat.Name(),
		Message:   final,
		Frames:    outcome.Stats.FramesStepped,
		Trials:    outcome.Stats.Trials,
		Nodes:     outcome.Stats.NodesExplored,
	})
	return outcome, nil
}

// pickStrategy resolves the configured or automatic strategy and finishes
// wiring it (logger, tuning, random source).
func (c *Coordinator) pickStrategy(ctx context.Context) (ports.Strategy, error) {
	strat := c.strategy
	if strat == nil {
		supports := false
		if err := c.loop.Do(ctx, func(sim ports.Simulator) error {
			supports = ports.SupportsSnapshot(sim)
			return nil
		}); err != nil {
			return nil, err
		}
		if supports {
			strat = search.NewDFS()
		} else {
			strat = search.NewRandom(c.rng())
		}
	}

	// Wire a private copy so a caller-supplied strategy value is never
	// mutated and may be reused across coordinators.
	switch s := strat.(type) {
	case *search.DFS:
		d := *s
		d.Logger = c.logger
		strat = &d
	case *search.Random:
		r := *s
		r.Logger = c.logger
		if r.Tuning == (domain.TrialTuning{}) {
			r.Tuning = c.tuning
		}
		if r.Rand == nil {
			r.Rand = c.rng()
		}
		strat = &r
	}
	return strat, nil
}

// emit fires a lifecycle hook and mirrors the event's message onto the
// progress stream.
func (c *Coordinator) emit(ctx context.Context, hook func(context.Context, *domain.SearchEvent), ev *domain.SearchEvent) {
	if hook != nil {
		hook(ctx, ev)
	}
	if ev.Message != "" {
		c.broker.publish(ev.Message)
	}
}
