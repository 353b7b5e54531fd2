// Package collapse fills a grid with catalog tiles using the wave
// function collapse algorithm.
//
// What:
//
//   - Engine owns an immutable catalog and its adjacency table and may
//     serve any number of concurrent Generate calls.
//   - Run is one attempt: a state machine Running → Done | Contradiction
//     that advances one collapse per Step.
//   - Generate retries contradicting attempts on a fresh grid, up to
//     MaxAttempts, then reports ErrGenerationFailed.
//   - GenerateMany produces independent grids in parallel.
//
// Algorithm (one Step):
//
//  1. Select the non-collapsed cell with the smallest non-empty domain.
//     Ties: TieFirst takes the first in scan order (RowMajor or Hilbert),
//     TieRandom picks uniformly among them.
//  2. Collapse it to one tile of its domain, drawn with the configured
//     weights (uniform by default).
//  3. Propagate: pop a changed cell C; for each neighbor N in direction d,
//     intersect N's domain with the union of table[t][d] over t in C's
//     domain; push N whenever it shrank, collapsed or not. An emptied
//     domain stops propagation at once and ends the attempt with
//     Contradiction.
//
// Determinism:
//
//   - Seed==0 selects a fixed default seed; no time-based randomness.
//   - Attempt 1 uses the seed itself, later attempts derive independent
//     streams from it. Result.Seed replays the successful attempt.
//
// Complexity (W×H cells, k tiles):
//
//   - Selection: O(W×H·k/64) per step.
//   - Propagation: each cell shrinks at most k times, each visit costs
//     O(4·k²/64), so O(W×H·k³/64) per attempt in the worst case.
//   - At most W×H steps per attempt and MaxAttempts attempts: every call
//     terminates.
//
// Errors:
//
//   - ErrNilCatalog: NewEngine called with a nil catalog.
//   - ErrOptionViolation: invalid option (attempts, weights, pins).
//   - ErrGenerationFailed: every attempt contradicted; wraps ErrContradiction.
//   - ErrNotDone: Result requested from an unfinished run.
//   - ErrInconsistent: Verify found an illegal neighbor pair.
//   - Hook errors and context errors are returned as-is or wrapped.
package collapse
