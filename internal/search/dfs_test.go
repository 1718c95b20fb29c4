package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entity12208/macroforge/internal/simloop"
	"github.com/entity12208/macroforge/pkg/adapters/sim"
	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

func budgetFor(maxFrames int) domain.SearchBudget {
	return domain.SearchBudget{
		MaxFrames: maxFrames,
		Deadline:  time.Now().Add(10 * time.Second),
		MaxTrials: 1,
	}
}

func TestDFS_FindsUniqueRun(t *testing.T) {
	// The only survivable input pattern engages exactly at frame 3; success
	// is detectable once frame 7 has been played.
	oracle := &sim.Scripted{EngageAt: []int{3}, SuccessAtFrame: 7, FailOnExtra: true}
	loop := simloop.New(oracle)
	defer loop.Close()

	out, err := NewDFS().Search(context.Background(), loop, budgetFor(10), nil)
	require.NoError(t, err)
	require.True(t, out.IsFound())

	want := domain.FromEngagedFrames(8, []int{3})
	assert.True(t, want.Equal(out.Sequence), "got %s, want %s", out.Sequence, want)

	// Idle-first ordering plus failure pruning keeps the tree far below the
	// full 2^10 expansion.
	assert.Greater(t, out.Stats.NodesExplored, 0)
	assert.Less(t, out.Stats.NodesExplored, 40)
}

func TestDFS_PrefersFewerEngagements(t *testing.T) {
	// Nothing is required and nothing fails, so many runs exist; the idle
	// branch is tried first, so the all-idle run must win.
	oracle := &sim.Scripted{SuccessAtFrame: 3}
	loop := simloop.New(oracle)
	defer loop.Close()

	out, err := NewDFS().Search(context.Background(), loop, budgetFor(10), nil)
	require.NoError(t, err)
	require.True(t, out.IsFound())
	assert.Empty(t, out.Sequence.EngagedFrames())
	assert.Len(t, out.Sequence, 4)
}

func TestDFS_Exhausted(t *testing.T) {
	oracle := &sim.Scripted{SuccessAtFrame: 100}
	loop := simloop.New(oracle)
	defer loop.Close()

	out, err := NewDFS().Search(context.Background(), loop, budgetFor(3), nil)
	require.NoError(t, err)
	assert.False(t, out.IsFound())
	assert.Equal(t, domain.ReasonExhausted, out.Reason)

	// Depth cap 3 means the full binary tree is visited: 1+2+4+8 nodes, one
	// step per non-root node.
	assert.Equal(t, 15, out.Stats.NodesExplored)
	assert.Equal(t, 14, out.Stats.FramesStepped)
}

func TestDFS_Timeout(t *testing.T) {
	oracle := &sim.Scripted{SuccessAtFrame: 100}
	loop := simloop.New(oracle)
	defer loop.Close()

	budget := domain.SearchBudget{MaxFrames: 100, Deadline: time.Now().Add(-time.Second)}
	out, err := NewDFS().Search(context.Background(), loop, budget, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonTimeout, out.Reason)
	assert.Equal(t, 0, out.Stats.FramesStepped)
}

func TestDFS_NotReady(t *testing.T) {
	loop := simloop.New(&sim.Scripted{Unready: true})
	defer loop.Close()

	out, err := NewDFS().Search(context.Background(), loop, budgetFor(10), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonNotReady, out.Reason)
	assert.Equal(t, domain.SearchStats{}, out.Stats, "no budget may be consumed")
}

func TestDFS_RequiresSnapshotCapability(t *testing.T) {
	loop := simloop.New(sim.NoSnapshot{Simulator: &sim.Scripted{SuccessAtFrame: 3}})
	defer loop.Close()

	_, err := NewDFS().Search(context.Background(), loop, budgetFor(10), nil)
	assert.ErrorIs(t, err, domain.ErrSnapshotUnsupported)
}

func TestDFS_EmitsProgress(t *testing.T) {
	oracle := &sim.Scripted{SuccessAtFrame: 100}
	loop := simloop.New(oracle)
	defer loop.Close()

	d := NewDFS()
	d.ProgressEvery = 5

	var events []*domain.SearchEvent
	out, err := d.Search(context.Background(), loop, budgetFor(3), func(ev *domain.SearchEvent) {
		events = append(events, ev)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonExhausted, out.Reason)

	// 15 explored nodes at an interval of 5.
	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, domain.EventProgress, ev.Type)
		assert.Equal(t, "backtracking", ev.Strategy)
		assert.Contains(t, ev.Message, "Searching...")
	}
}

func TestDFS_LeavesSimulatorAtFoundState(t *testing.T) {
	oracle := &sim.Scripted{EngageAt: []int{3}, SuccessAtFrame: 7, FailOnExtra: true}
	loop := simloop.New(oracle)
	defer loop.Close()

	out, err := NewDFS().Search(context.Background(), loop, budgetFor(10), nil)
	require.NoError(t, err)
	require.True(t, out.IsFound())

	// The winning path is not unwound, so the simulator still reports
	// success afterwards.
	var success bool
	require.NoError(t, loop.Do(context.Background(), func(s ports.Simulator) error {
		success = s.Success()
		return nil
	}))
	assert.True(t, success)
}
