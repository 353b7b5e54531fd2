// Package adjacency precomputes which catalog tiles may sit next to each
// other, per direction.
//
// For tiles a, b and direction d, b is allowed in direction d of a iff
// tileset.Compatible(a.Borders[d], b.Borders[d.Opposite()]) holds and
// a, b are not two copies of the same self-excluding base tile.
//
// Rows are bitsets sized to the catalog, so the engine's hot path
// (Support: union of rows over a domain) is a handful of word ORs.
//
// Complexity:
//
//   - Build:   O(k²·s) for k tiles with signatures of length s.
//   - Support: O(|domain|·k/64).
//
// A Table never changes after Build and may be shared by concurrent runs.
package adjacency
