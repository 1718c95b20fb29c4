/*
Package search implements the two search strategies of the Macroforge core.

  - DFS: backtracking depth-bounded depth-first search. The primary strategy
    when the simulator supports snapshot/restore. Branch order is fixed (idle
    before engage), so the first run found is the lexicographically smallest.
  - Random: randomized trial search. The fallback for simulators that cannot
    cheaply undo state; it replays freshly generated sparse sequences from a
    full reset each trial.

Both strategies access the simulator exclusively through a ports.Driver and
honor the wall-clock deadline at frame (DFS) or trial (Random) granularity.
*/
package search
