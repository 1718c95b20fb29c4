package domain

import "strings"

// FrameInput is a single per-frame control decision: true means the control
// (e.g. a jump button) is engaged during that tick. Immutable once produced.
type FrameInput bool

// DecisionSequence is an ordered run of per-frame inputs. The slice index is
// the frame number: 0-based, contiguous, no gaps.
type DecisionSequence []FrameInput

// Clone returns an independent copy of the sequence.
func (s DecisionSequence) Clone() DecisionSequence {
	if s == nil {
		return nil
	}
	out := make(DecisionSequence, len(s))
	copy(out, s)
	return out
}

// Equal reports whether two sequences are identical frame-for-frame.
func (s DecisionSequence) Equal(other DecisionSequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// EngagedFrames returns the frame indices at which the control is engaged,
// in ascending order.
func (s DecisionSequence) EngagedFrames() []int {
	frames := make([]int, 0)
	for i, in := range s {
		if in {
			frames = append(frames, i)
		}
	}
	return frames
}

// FromEngagedFrames builds a sequence of the given length with the control
// engaged exactly at the listed frame indices. Indices outside [0, length)
// are ignored.
func FromEngagedFrames(length int, frames []int) DecisionSequence {
	seq := make(DecisionSequence, length)
	for _, f := range frames {
		if f >= 0 && f < length {
			seq[f] = true
		}
	}
	return seq
}

// String renders the sequence compactly for logs: "." for idle frames,
// "x" for engaged ones.
func (s DecisionSequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, in := range s {
		if in {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
