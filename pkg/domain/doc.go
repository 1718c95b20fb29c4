/*
Package domain contains the core domain models for the Macroforge solver.

It defines the fundamental entities of the search: per-frame inputs, decision
sequences, search budgets, outcomes, and exported artifacts. This package is
kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - FrameInput: a single per-tick control decision (engage or not).
  - DecisionSequence: the ordered run of inputs a search produces.
  - SearchBudget: the frame, trial, and wall-clock limits of one search.
  - Outcome: the terminal result of a search (Found or NotFound).
  - Artifact: the exported, persisted encoding of a found run.
*/
package domain
