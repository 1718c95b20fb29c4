package simloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entity12208/macroforge/pkg/domain"
	"github.com/entity12208/macroforge/pkg/ports"
)

// countingSim trips the test if it is ever entered from two goroutines at
// once.
type countingSim struct {
	t      *testing.T
	active int32
	steps  int
}

func (s *countingSim) Ready() bool { return true }

func (s *countingSim) Step(domain.FrameInput) error {
	if n := atomic.AddInt32(&s.active, 1); n != 1 {
		s.t.Errorf("simulator entered concurrently: %d active", n)
	}
	defer atomic.AddInt32(&s.active, -1)
	s.steps++
	return nil
}

func (s *countingSim) Success() bool { return false }
func (s *countingSim) Failure() bool { return false }
func (s *countingSim) Reset() error  { return nil }

func TestLoop_SerializesAccess(t *testing.T) {
	sim := &countingSim{t: t}
	loop := New(sim)
	defer loop.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				err := loop.Do(context.Background(), func(s ports.Simulator) error {
					return s.Step(false)
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	// steps is written only on the loop goroutine, so it needs no atomics and
	// its final value proves every closure ran.
	err := loop.Do(context.Background(), func(ports.Simulator) error {
		assert.Equal(t, 500, sim.steps)
		return nil
	})
	require.NoError(t, err)
}

func TestLoop_PropagatesClosureError(t *testing.T) {
	loop := New(&countingSim{t: t})
	defer loop.Close()

	sentinel := errors.New("boom")
	err := loop.Do(context.Background(), func(ports.Simulator) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestLoop_DoAfterClose(t *testing.T) {
	loop := New(&countingSim{t: t})
	loop.Close()
	loop.Close() // idempotent

	err := loop.Do(context.Background(), func(ports.Simulator) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestLoop_ContextCanceledBeforeAccept(t *testing.T) {
	loop := New(&countingSim{t: t})
	defer loop.Close()

	// Occupy the loop so the next submission cannot be accepted.
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = loop.Do(context.Background(), func(ports.Simulator) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := loop.Do(ctx, func(ports.Simulator) error {
		t.Error("closure ran after context cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestLoop_AcceptedClosureRunsToCompletion(t *testing.T) {
	loop := New(&countingSim{t: t})
	defer loop.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- loop.Do(ctx, func(ports.Simulator) error {
			cancel() // cancellation mid-closure must not abort it
			time.Sleep(10 * time.Millisecond)
			return nil
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("closure did not finish")
	}
}
