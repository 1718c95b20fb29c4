package ports

import "github.com/entity12208/macroforge/pkg/domain"

// Simulator is the contract the solver requires from a host simulation. The
// simulation is treated as an opaque stateful oracle: it can be advanced one
// fixed tick at a time and queried for its terminal conditions.
//
// All methods must be invoked from the simulation's owning execution context
// (see Driver). They are synchronous.
type Simulator interface {
	// Ready reports whether the simulation is in a drivable state. Step,
	// Reset, and the snapshot operations return domain.ErrNotReady when it
	// is not.
	Ready() bool

	// Step advances the simulation by exactly one fixed tick, applying the
	// control input during that tick.
	Step(input domain.FrameInput) error

	// Success reports whether the simulation has reached its terminal
	// success condition. Stable once true within the same run.
	Success() bool

	// Failure reports whether the simulation has entered an unrecoverable
	// terminal failure condition. Stable once true.
	Failure() bool

	// Reset returns the simulation to its initial pre-run state.
	Reset() error
}

// SnapshotToken is an opaque capture of simulation state, only meaningful to
// the Simulator that produced it.
type SnapshotToken any

// Snapshotter is the optional capability of capturing and reverting state
// without replaying from the beginning. Simulators that implement it unlock
// the backtracking search strategy.
type Snapshotter interface {
	// Snapshot captures enough state to later resume stepping as if no Step
	// had happened since the capture.
	Snapshot() (SnapshotToken, error)

	// Restore reverts the simulation to a previously captured snapshot.
	Restore(token SnapshotToken) error
}

// SupportsSnapshot reports whether the simulator offers the snapshot/restore
// capability.
func SupportsSnapshot(sim Simulator) bool {
	_, ok := sim.(Snapshotter)
	return ok
}
