package ports

import "context"

// Driver serializes access to one Simulator onto its owning execution
// context. Host simulations are single-threaded-affine: every Simulator call
// must happen on one designated goroutine. Routing all access through a
// Driver makes that rule an explicit capability instead of an incidental
// thread identity.
//
// Within one Driver, submitted functions run strictly in submission order,
// one at a time, on the owning goroutine.
type Driver interface {
	// Do runs fn on the simulation's owning goroutine and waits for it to
	// finish, returning fn's error. If ctx is done before fn is accepted,
	// Do returns the context error without running fn. Once accepted, fn
	// always runs to completion: individual steps are atomic.
	Do(ctx context.Context, fn func(Simulator) error) error
}
