package sim

import (
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// Scripted is a deterministic oracle with a known solution, for tests and
// examples: the run succeeds once the frame SuccessAtFrame has been played,
// provided the control was engaged at exactly the frames in EngageAt.
//
// With FailOnExtra set, engaging at any other frame is an immediate failure,
// which makes the solution unique.
type Scripted struct {
	// EngageAt lists the frame indices that must be engaged.
	EngageAt []int

	// SuccessAtFrame is the frame index at which success is detected, once
	// all required engagements happened.
	SuccessAtFrame int

	// FailOnExtra makes any engagement outside EngageAt fatal.
	FailOnExtra bool

	// Unready makes the simulator report a non-drivable state.
	Unready bool

	// Steps counts every Step call across resets, for call-budget
	// assertions.
	Steps int

	frame  int
	hit    map[int]bool
	missed bool
	failed bool
}

// Ready implements ports.Simulator.
func (s *Scripted) Ready() bool { return !s.Unready }

// Step implements ports.Simulator.
func (s *Scripted) Step(input domain.FrameInput) error {
	if s.Unready {
		return domain.ErrNotReady
	}
	s.Steps++
	if input {
		if s.required(s.frame) {
			if s.hit == nil {
				s.hit = make(map[int]bool)
			}
			s.hit[s.frame] = true
		} else if s.FailOnExtra {
			s.failed = true
		}
	} else if s.required(s.frame) {
		s.missed = true
	}
	s.frame++
	return nil
}

// Success implements ports.Simulator.
func (s *Scripted) Success() bool {
	return s.frame > s.SuccessAtFrame && !s.missed && !s.failed && len(s.hit) == len(s.EngageAt)
}

// Failure implements ports.Simulator.
func (s *Scripted) Failure() bool { return s.failed }

// Reset implements ports.Simulator.
func (s *Scripted) Reset() error {
	if s.Unready {
		return domain.ErrNotReady
	}
	s.frame = 0
	s.hit = nil
	s.missed = false
	s.failed = false
	return nil
}

// Snapshot implements ports.Snapshotter.
func (s *Scripted) Snapshot() (ports.SnapshotToken, error) {
	if s.Unready {
		return nil, domain.ErrNotReady
	}
	hit := make(map[int]bool, len(s.hit))
	for k, v := range s.hit {
		hit[k] = v
	}
	return &scriptedToken{frame: s.frame, hit: hit, missed: s.missed, failed: s.failed}, nil
}

// Restore implements ports.Snapshotter.
func (s *Scripted) Restore(token ports.SnapshotToken) error {
	t, ok := token.(*scriptedToken)
	if !ok {
		return domain.ErrNotReady
	}
	s.frame = t.frame
	s.hit = make(map[int]bool, len(t.hit))
	for k, v := range t.hit {
		s.hit[k] = v
	}
	s.missed = t.missed
	s.failed = t.failed
	return nil
}

func (s *Scripted) required(frame int) bool {
	for _, f := range s.EngageAt {
		if f == frame {
			return true
		}
	}
	return false
}

type scriptedToken struct {
	frame  int
	hit    map[int]bool
	missed bool
	failed bool
}

// NoSnapshot hides the snapshot capability of a wrapped simulator, forcing
// the randomized fallback strategy.
type NoSnapshot struct {
	ports.Simulator
}

var (
	_ ports.Simulator   = (*Scripted)(nil)
	_ ports.Snapshotter = (*Scripted)(nil)
)
