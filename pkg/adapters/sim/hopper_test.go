package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entity12208/macroforge/pkg/domain"
)

// gapLevel needs exactly one jump, at frame 7, to clear the hazard.
func gapLevel() *Level {
	return &Level{
		Name:    "gap",
		Length:  12,
		Hazards: []Hazard{{From: 8, To: 9, Height: 0.3}},
	}
}

func TestHopper_Deterministic(t *testing.T) {
	seq := domain.FromEngagedFrames(12, []int{7})

	a := NewHopper(gapLevel())
	b := NewHopper(gapLevel())
	for _, in := range seq {
		require.NoError(t, a.Step(in))
		require.NoError(t, b.Step(in))
		assert.Equal(t, a.state, b.state, "states diverged at frame %d", a.Frame())
	}
	assert.True(t, a.Success())
	assert.False(t, a.Failure())
}

func TestHopper_IdleRunDies(t *testing.T) {
	h := NewHopper(gapLevel())
	for i := 0; i < 12; i++ {
		require.NoError(t, h.Step(false))
		if h.Failure() {
			break
		}
	}
	assert.True(t, h.Failure())
	assert.Equal(t, 8, h.Frame(), "death on entering the hazard")
}

func TestHopper_EarlyJumpDies(t *testing.T) {
	h := NewHopper(gapLevel())
	for _, in := range domain.FromEngagedFrames(12, []int{5}) {
		require.NoError(t, h.Step(in))
		if h.Failure() {
			break
		}
	}
	assert.True(t, h.Failure(), "landing inside the hazard is fatal")
}

func TestHopper_TerminalStateIsStable(t *testing.T) {
	h := NewHopper(gapLevel())
	for _, in := range domain.FromEngagedFrames(12, []int{7}) {
		require.NoError(t, h.Step(in))
	}
	require.True(t, h.Success())

	require.NoError(t, h.Step(true))
	assert.True(t, h.Success())
	assert.False(t, h.Failure())
	assert.Equal(t, 13, h.Frame())
}

func TestHopper_NoAirJump(t *testing.T) {
	h := NewHopper(&Level{Name: "flat", Length: 100})
	require.NoError(t, h.Step(true))
	airborneVY := h.state.VY

	// A second engage while airborne must not add impulse.
	require.NoError(t, h.Step(true))
	assert.Less(t, h.state.VY, airborneVY)
}

func TestHopper_SnapshotRestore(t *testing.T) {
	h := NewHopper(gapLevel())
	for i := 0; i < 4; i++ {
		require.NoError(t, h.Step(false))
	}
	token, err := h.Snapshot()
	require.NoError(t, err)

	// Diverge, then restore.
	require.NoError(t, h.Step(true))
	require.NoError(t, h.Step(false))
	require.NoError(t, h.Restore(token))
	assert.Equal(t, 4, h.Frame())

	// The restored timeline must evolve exactly like an untouched one.
	control := NewHopper(gapLevel())
	for i := 0; i < 4; i++ {
		require.NoError(t, control.Step(false))
	}
	for _, in := range (domain.DecisionSequence{false, false, false, true}) {
		require.NoError(t, h.Step(in))
		require.NoError(t, control.Step(in))
		assert.Equal(t, control.state, h.state)
	}
}

func TestHopper_ResetReturnsToStart(t *testing.T) {
	h := NewHopper(gapLevel())
	for i := 0; i < 6; i++ {
		require.NoError(t, h.Step(false))
	}
	require.NoError(t, h.Reset())
	assert.Equal(t, 0, h.Frame())
	assert.Equal(t, hopperState{}, h.state)
}

func TestHopper_NotReadyWithoutLevel(t *testing.T) {
	h := NewHopper(nil)
	assert.False(t, h.Ready())
	assert.ErrorIs(t, h.Step(false), domain.ErrNotReady)
	assert.ErrorIs(t, h.Reset(), domain.ErrNotReady)
}

func TestLoadLevel(t *testing.T) {
	src := `
name: gap
length: 12
hazards:
  - from: 8
    to: 9
    height: 0.3
metadata:
  solver:
    min_trial_frames: 10
    max_trial_frames: 20
`
	level, err := LoadLevel(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "gap", level.Name)
	assert.Equal(t, float64(12), level.Length)
	require.Len(t, level.Hazards, 1)
	assert.Equal(t, Hazard{From: 8, To: 9, Height: 0.3}, level.Hazards[0])
	assert.Contains(t, level.Metadata, "solver")
}

func TestLoadLevel_RejectsUnknownFields(t *testing.T) {
	_, err := LoadLevel(strings.NewReader("name: x\nlength: 5\nspeed: 3\n"))
	assert.Error(t, err)
}

func TestLoadLevel_Invalid(t *testing.T) {
	for name, src := range map[string]string{
		"zero length":     "name: x\nlength: 0\n",
		"inverted hazard": "name: x\nlength: 5\nhazards: [{from: 3, to: 1, height: 1}]\n",
		"flat hazard":     "name: x\nlength: 5\nhazards: [{from: 1, to: 2, height: 0}]\n",
	} {
		_, err := LoadLevel(strings.NewReader(src))
		assert.Error(t, err, name)
	}
}

func TestScripted_UniqueSolution(t *testing.T) {
	s := &Scripted{EngageAt: []int{3}, SuccessAtFrame: 7, FailOnExtra: true}

	for _, in := range domain.FromEngagedFrames(8, []int{3}) {
		require.NoError(t, s.Step(in))
	}
	assert.True(t, s.Success())

	require.NoError(t, s.Reset())
	for _, in := range domain.FromEngagedFrames(8, []int{3, 5}) {
		require.NoError(t, s.Step(in))
		if s.Failure() {
			break
		}
	}
	assert.True(t, s.Failure(), "an extra engagement is fatal")

	require.NoError(t, s.Reset())
	for i := 0; i < 8; i++ {
		require.NoError(t, s.Step(false))
	}
	assert.False(t, s.Success(), "a missed engagement never succeeds")
	assert.False(t, s.Failure())
}
