// Package grid holds the mutable cell state of one wave function
// collapse run.
//
// What:
//
//   - Grid is a Width×Height array of cells, stored row-major.
//   - Each Cell keeps its domain (the tile indices it may still become)
//     as a bitset and a collapsed flag.
//   - Neighbors lists the in-bounds orthogonal neighbors of a cell with
//     the direction they lie in. There is no wraparound.
//   - Order enumerates every cell in RowMajor or Hilbert curve order; the
//     engine uses it to break entropy ties.
//
// Invariants:
//
//   - Collapsed implies a singleton domain.
//   - An empty domain on a non-collapsed cell is a contradiction.
//
// Complexity:
//
//   - New, Reset, IsFullyCollapsed, HasContradiction: O(W×H).
//   - Neighbors, InBounds, Index, Coordinate: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: width or height is not positive.
//   - ErrNoTiles: tile count is not positive.
//   - ErrOutOfBounds: coordinates outside the grid.
//
// A Grid is not safe for concurrent use; it belongs to a single run.
package grid
