package domain

// NotFoundReason explains why a search terminated without a run.
type NotFoundReason string

const (
	// ReasonTimeout: the wall-clock budget expired.
	ReasonTimeout NotFoundReason = "timeout"
	// ReasonExhausted: the bounded search space was fully explored (DFS) or
	// all trials were spent (randomized).
	ReasonExhausted NotFoundReason = "exhausted"
	// ReasonNotReady: the simulation was never in a drivable state. No
	// budget was consumed.
	ReasonNotReady NotFoundReason = "simulation never ready"
)

// SearchStats counts the work a search performed. Informational only.
type SearchStats struct {
	NodesExplored int
	FramesStepped int
	Trials        int
}

// Outcome is the terminal result of one search invocation: either a found
// decision sequence or a reason why none was produced. Produced exactly once
// per search.
type Outcome struct {
	// Sequence is the found run. Non-nil if and only if the search succeeded.
	Sequence DecisionSequence

	// Reason is set when no run was found.
	Reason NotFoundReason

	// Stats describes the work performed, regardless of result.
	Stats SearchStats
}

// Found builds a successful outcome, copying the sequence so later mutation
// of the caller's slice cannot corrupt it.
func Found(seq DecisionSequence) Outcome {
	cloned := seq.Clone()
	if cloned == nil {
		cloned = DecisionSequence{}
	}
	return Outcome{Sequence: cloned}
}

// NotFound builds a failed outcome with the given reason.
func NotFound(reason NotFoundReason) Outcome {
	return Outcome{Reason: reason}
}

// IsFound reports whether the outcome carries a run.
func (o Outcome) IsFound() bool {
	return o.Sequence != nil
}
