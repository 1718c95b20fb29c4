/*
Package macroforge searches a deterministic, frame-stepped simulation for a
sequence of per-frame control decisions that reaches its success state, then
serializes that sequence into a portable replay artifact.

The simulation is treated as an opaque oracle behind the ports.Simulator
interface. A Coordinator owns one simulation handle, runs at most one search
against it at a time, streams human-readable progress, and exports found
runs through a pluggable encoder.

	sim := sim.NewHopper(level)
	coord := macroforge.New(sim, macroforge.WithTimeout(40*time.Second))
	defer coord.Close()

	outcome, err := coord.Solve(context.Background())
	if err == nil && outcome.IsFound() {
		artifact, _ := coord.Export(context.Background(), level.Name)
		// persist artifact.Data under artifact.Filename
	}

Strategy selection is automatic: simulators that support snapshot/restore
get the backtracking depth-first search, everything else falls back to the
randomized trial search.
*/
package macroforge
