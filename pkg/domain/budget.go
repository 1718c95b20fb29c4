package domain

import "time"

// Default limits. MaxFrames covers two minutes of simulated time at 60
// ticks per second; searches give up after 40 seconds of wall clock unless
// told otherwise.
const (
	TickRate         = 60
	DefaultMaxFrames = TickRate * 60 * 2
	DefaultTimeout   = 40 * time.Second
	DefaultMaxTrials = 2000
)

// SearchBudget bounds a single search invocation. It is a value object:
// constructed once per search, never mutated.
type SearchBudget struct {
	// MaxFrames caps the recursion depth (DFS) and trial length (randomized).
	MaxFrames int

	// Deadline is the absolute wall-clock instant after which the search
	// must abort with a timeout outcome.
	Deadline time.Time

	// MaxTrials caps the number of attempts made by the randomized strategy.
	// Ignored by the backtracking strategy.
	MaxTrials int
}

// NewBudget builds a budget with the given timeout relative to now, filling
// unset caps with defaults.
func NewBudget(timeout time.Duration, maxFrames, maxTrials int) SearchBudget {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	if maxTrials <= 0 {
		maxTrials = DefaultMaxTrials
	}
	return SearchBudget{
		MaxFrames: maxFrames,
		Deadline:  time.Now().Add(timeout),
		MaxTrials: maxTrials,
	}
}

// Expired reports whether the deadline has passed at the given instant.
func (b SearchBudget) Expired(now time.Time) bool {
	return !b.Deadline.IsZero() && now.After(b.Deadline)
}

// TrialTuning holds the draw ranges used by the randomized strategy.
// Zero values mean "use built-in defaults". Levels may override these via
// their metadata block.
type TrialTuning struct {
	// MinTrialFrames and MaxTrialFrames bound the uniformly drawn trial
	// length.
	MinTrialFrames int `mapstructure:"min_trial_frames"`
	MaxTrialFrames int `mapstructure:"max_trial_frames"`

	// MinEngageProb and MaxEngageProb bound the uniformly drawn per-frame
	// engage probability. Kept low: dense engagement sequences are rarely
	// valid control patterns.
	MinEngageProb float64 `mapstructure:"min_engage_prob"`
	MaxEngageProb float64 `mapstructure:"max_engage_prob"`
}
