// Package simloop binds a Simulator to one dedicated goroutine.
//
// Host simulations are single-threaded-affine: calling them from more than
// one goroutine is undefined behavior on the host's side. The Loop makes
// that contract explicit: it owns the simulator on a goroutine it spawns at
// construction, and every access is marshaled through Do. Callers pay one
// synchronization round-trip per submitted closure, so strategies batch a
// full frame (or a full trial) into a single closure.
package simloop

import (
	"context"
	"errors"
	"sync"

	"github.com/entity12208/macroforge/pkg/ports"
)

// ErrClosed is returned by Do after the loop has been shut down.
var ErrClosed = errors.New("simulation loop closed")

type task struct {
	fn  func(ports.Simulator) error
	res chan error
}

// Loop owns a Simulator on a dedicated goroutine and executes submitted
// closures strictly in submission order.
type Loop struct {
	tasks chan task
	done  chan struct{}
	once  sync.Once
}

// New starts the owning goroutine and returns the loop. The caller must not
// touch sim directly afterwards.
func New(sim ports.Simulator) *Loop {
	l := &Loop{
		tasks: make(chan task),
		done:  make(chan struct{}),
	}
	go l.run(sim)
	return l
}

func (l *Loop) run(sim ports.Simulator) {
	for {
		select {
		case t := <-l.tasks:
			t.res <- t.fn(sim)
		case <-l.done:
			return
		}
	}
}

// Do runs fn on the owning goroutine and waits for it to finish. If ctx is
// done before fn is accepted, Do returns the context error without running
// fn. Once accepted, fn runs to completion: a search can be canceled between
// frames but never mid-step.
func (l *Loop) Do(ctx context.Context, fn func(ports.Simulator) error) error {
	t := task{fn: fn, res: make(chan error, 1)}
	select {
	case l.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
	return <-t.res
}

// Close stops the owning goroutine. Idempotent. Closures already accepted by
// Do still run to completion; later submissions fail with ErrClosed.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

var _ ports.Driver = (*Loop)(nil)
