// Package tileset builds the immutable tile catalog consumed by the
// wave function collapse engine.
//
// What:
//
//   - Signature encodes one tile border as a string of symbols.
//   - Compatible decides whether two borders may touch: a == reverse(b).
//   - Build expands base tiles into their four rotations, removes tiles
//     whose border tuples are identical and re-indexes the survivors.
//   - Load reads base tiles from a YAML tile-set file.
//   - Circuit and Demo ship two ready-made tile sets.
//
// Why:
//
//   - Borders are read clockwise, so two tiles line up when one border
//     equals the other read backwards. A symmetric border ("BCB") matches
//     itself; an asymmetric one ("ABB") matches its mirror ("BBA").
//   - Rotating the border tuple by one position is the same as rotating
//     the tile a quarter turn clockwise, so assets never need inspecting.
//
// Complexity:
//
//   - Compatible: O(len(sig)).
//   - Build:      O(k·log k) for k base tiles (dedup uses a map).
//
// Errors:
//
//   - ErrEmptyTileSet: no base tiles.
//   - ErrInvalidTileDefinition: wrong border count or empty border.
//   - ErrUnknownTheme: Theme called with an unregistered name.
package tileset
