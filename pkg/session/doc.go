/*
Package session manages the mapping from level identity to a live solver
coordinator.

A level behaves like a session: the first acquirer spins up a simulation and
its coordinator, later acquirers share it (and hit the coordinator's
one-search-at-a-time rule), and the simulation is torn down when the last
reference is released. Reference counting garbage-collects idle entries.
*/
package session
