package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/entity12208/macroforge/internal/logging"
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// Built-in trial tuning. Trial lengths are drawn uniformly between four
// seconds and the frame cap; engage probability stays sparse because dense
// engagement sequences are rarely valid control patterns.
const (
	defaultMinTrialFrames = 4 * domain.TickRate
	defaultMinEngageProb  = 0.02
	defaultMaxEngageProb  = 0.15

	// progressEveryTrials is how often a status update is emitted.
	progressEveryTrials = 10
)

// Random is the randomized trial strategy: generate a sparse sequence, reset
// the simulation, replay, repeat. It needs no snapshot capability and O(1)
// memory, at the price of completeness and ordering guarantees.
type Random struct {
	// Rand is the random source. Injecting a seeded source makes a search
	// reproducible: same seed, same trials, same outcome.
	Rand *rand.Rand

	// Tuning overrides the built-in draw ranges where non-zero.
	Tuning domain.TrialTuning

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *slog.Logger
}

// NewRandom creates the strategy around the given random source.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{
		Rand:   rng,
		Logger: logging.NewNop(),
	}
}

// Name implements ports.Strategy.
func (r *Random) Name() string { return "randomized" }

// Search runs up to budget.MaxTrials trials or until the deadline. A trial
// that reaches the success condition before its sequence is exhausted
// reports the prefix actually played; trailing undrawn frames are
// irrelevant.
func (r *Random) Search(ctx context.Context, drv ports.Driver, budget domain.SearchBudget, progress ports.ProgressFunc) (domain.Outcome, error) {
	stats := domain.SearchStats{}

	err := drv.Do(ctx, func(sim ports.Simulator) error {
		if !sim.Ready() {
			return domain.ErrNotReady
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

	minLen, maxLen, minP, maxP := r.ranges(budget)

	for trial := 1; trial <= budget.MaxTrials; trial++ {
		if budget.Expired(time.Now()) {
			out := domain.NotFound(domain.ReasonTimeout)
			out.Stats = stats
			return out, nil
		}

		length := minLen
		if maxLen > minLen {
			length += r.Rand.IntN(maxLen - minLen + 1)
		}
		p := minP + r.Rand.Float64()*(maxP-minP)

		seq := make(domain.DecisionSequence, length)
		for i := range seq {
			seq[i] = domain.FrameInput(r.Rand.Float64() < p)
		}

		var played int
		var success bool
		// One trial is a single unit of work on the owning goroutine:
		// reset, then replay frame-by-frame until a terminal condition.
		err := drv.Do(ctx, func(sim ports.Simulator) error {
			if err := sim.Reset(); err != nil {
				return err
			}
			for _, in := range seq {
				if err := sim.Step(in); err != nil {
					return err
				}
				played++
				if sim.Success() {
					success = true
					return nil
				}
				if sim.Failure() {
					return nil
				}
			}
			return nil
		})
		stats.Trials = trial
		stats.FramesStepped += played
		if err != nil {
			return domain.Outcome{}, err
		}

		if success {
			r.Logger.Debug("run found", "trial", trial, "frames", played)
			out := domain.Found(seq[:played])
			out.Stats = stats
			return out, nil
		}

		if progress != nil && trial%progressEveryTrials == 0 {
			progress(&domain.SearchEvent{
				Timestamp: time.Now(),
				Type:      domain.EventProgress,
				Strategy:  r.Name(),
				Message:   fmt.Sprintf("Searching... trial %d/%d", trial, budget.MaxTrials),
				Trials:    trial,
				Frames:    stats.FramesStepped,
			})
		}
	}

	out := domain.NotFound(domain.ReasonExhausted)
	out.Stats = stats
	return out, nil
}

// ranges resolves the effective draw ranges from tuning overrides, built-in
// defaults, and the budget's frame cap.
func (r *Random) ranges(budget domain.SearchBudget) (minLen, maxLen int, minP, maxP float64) {
	minLen = r.Tuning.MinTrialFrames
	if minLen <= 0 {
		minLen = defaultMinTrialFrames
	}
	maxLen = r.Tuning.MaxTrialFrames
	if maxLen <= 0 {
		maxLen = budget.MaxFrames
	}
	if maxLen > budget.MaxFrames {
		maxLen = budget.MaxFrames
	}
	if minLen > maxLen {
		minLen = maxLen
	}
	minP = r.Tuning.MinEngageProb
	if minP <= 0 {
		minP = defaultMinEngageProb
	}
	maxP = r.Tuning.MaxEngageProb
	if maxP <= 0 {
		maxP = defaultMaxEngageProb
	}
	if maxP < minP {
		maxP = minP
	}
	return minLen, maxLen, minP, maxP
}

var _ ports.Strategy = (*Random)(nil)
