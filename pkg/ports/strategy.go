package ports

import (
	"context"

	"github.com/entity12208/macroforge/pkg/domain"
)

// ProgressFunc receives lifecycle events emitted from inside a running
// search. Implementations must be fast; they are called on the search
// goroutine.
type ProgressFunc func(*domain.SearchEvent)

// Strategy is a pluggable search algorithm. A strategy explores the
// simulation through the given Driver and either produces a decision
// sequence or reports why none was found.
//
// Strategies must honor the budget: the deadline is checked at least once
// per frame (backtracking) or per trial (randomized), and no produced
// sequence exceeds MaxFrames.
type Strategy interface {
	// Name identifies the strategy in logs and progress messages.
	Name() string

	// Search runs the algorithm to completion. The returned error is
	// reserved for conditions outside the outcome taxonomy (a broken
	// simulator, a canceled context); budget exhaustion is an Outcome,
	// not an error.
	Search(ctx context.Context, drv Driver, budget domain.SearchBudget, progress ProgressFunc) (domain.Outcome, error)
}
