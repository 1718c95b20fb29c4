/*
Package ports defines the driven ports (interfaces) for the Macroforge solver.

These interfaces decouple the search core from external implementations,
allowing it to drive any host simulation and to persist artifacts to various
backends.

# Key Interfaces

  - Simulator: the narrow contract the core requires from a host simulation.
  - Snapshotter: the optional snapshot/restore capability of a Simulator.
  - Driver: the single-context dispatcher all Simulator calls go through.
  - Strategy: a pluggable search algorithm.
  - Encoder: a pluggable replay serializer.
  - ArtifactStore: persistence for exported runs.
  - DistributedLocker: cross-replica locking for shared artifact stores.
*/
package ports
