// Package sim provides Simulator implementations: a deterministic hopper
// world for demos and end-to-end runs, and a scripted oracle for tests.
package sim

import (
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// Physics constants, per tick. Chosen so a jump lasts a handful of frames:
// with impulse 1.0 and gravity 0.5 the player is airborne for three ticks
// and peaks half a unit above the ground.
const (
	hopperSpeed   = 1.0
	hopperGravity = 0.5
	hopperImpulse = 1.0
)

// Hopper is a deterministic side-scrolling simulation: the player advances
// at constant speed and an engaged frame triggers a jump when grounded.
// The same level and decision sequence always produce the same transitions
// at the same frame indices.
//
// Hopper implements both ports.Simulator and ports.Snapshotter, so the
// backtracking strategy applies.
type Hopper struct {
	level *Level
	state hopperState
}

// hopperState is the full mutable state; snapshots copy it by value.
type hopperState struct {
	X, Y, VY float64
	Frame    int
	Dead     bool
	Done     bool
}

// NewHopper creates a simulation for the given level, at its initial state.
func NewHopper(level *Level) *Hopper {
	return &Hopper{level: level}
}

// Level returns the level the simulation runs.
func (h *Hopper) Level() *Level { return h.level }

// Frame returns the number of ticks stepped since the last reset.
func (h *Hopper) Frame() int { return h.state.Frame }

// Ready implements ports.Simulator.
func (h *Hopper) Ready() bool { return h.level != nil }

// Step implements ports.Simulator.
func (h *Hopper) Step(input domain.FrameInput) error {
	if !h.Ready() {
		return domain.ErrNotReady
	}
	if h.state.Dead || h.state.Done {
		// Terminal states are stable; extra steps are no-ops.
		h.state.Frame++
		return nil
	}

	if input && h.state.Y == 0 {
		h.state.VY = hopperImpulse
	}
	h.state.VY -= hopperGravity
	h.state.Y += h.state.VY
	if h.state.Y <= 0 {
		h.state.Y = 0
		h.state.VY = 0
	}
	h.state.X += hopperSpeed
	h.state.Frame++

	for _, hz := range h.level.Hazards {
		if h.state.X >= hz.From && h.state.X <= hz.To && h.state.Y < hz.Height {
			h.state.Dead = true
			return nil
		}
	}
	if h.state.X >= h.level.Length {
		h.state.Done = true
	}
	return nil
}

// Success implements ports.Simulator.
func (h *Hopper) Success() bool { return h.state.Done }

// Failure implements ports.Simulator.
func (h *Hopper) Failure() bool { return h.state.Dead }

// Reset implements ports.Simulator.
func (h *Hopper) Reset() error {
	if !h.Ready() {
		return domain.ErrNotReady
	}
	h.state = hopperState{}
	return nil
}

// Snapshot implements ports.Snapshotter.
func (h *Hopper) Snapshot() (ports.SnapshotToken, error) {
	if !h.Ready() {
		return nil, domain.ErrNotReady
	}
	return h.state, nil
}

// Restore implements ports.Snapshotter.
func (h *Hopper) Restore(token ports.SnapshotToken) error {
	if !h.Ready() {
		return domain.ErrNotReady
	}
	state, ok := token.(hopperState)
	if !ok {
		return domain.ErrNotReady
	}
	h.state = state
	return nil
}

var (
	_ ports.Simulator   = (*Hopper)(nil)
	_ ports.Snapshotter = (*Hopper)(nil)
)
