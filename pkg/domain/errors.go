package domain

import "errors"

// ErrNotReady is returned when the simulation is not in a drivable state.
// Non-retryable until the caller reinitializes the simulation.
var ErrNotReady = errors.New("simulation not ready")

// ErrSearchInFlight is returned when a search is requested against a handle
// that already has one in flight. Concurrent requests are rejected, never
// silently interleaved.
var ErrSearchInFlight = errors.New("search already in flight")

// ErrSnapshotUnsupported is returned when the backtracking strategy is
// requested but the simulator offers no snapshot capability.
var ErrSnapshotUnsupported = errors.New("simulator does not support snapshots")

// ErrNoRun is returned when an export is requested before any search has
// produced a run.
var ErrNoRun = errors.New("no run available to export")

// ErrArtifactNotFound is returned when an artifact key cannot be found in
// the store.
var ErrArtifactNotFound = errors.New("artifact not found")
