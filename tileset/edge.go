package tileset

// Signature describes one tile border as an ordered sequence of symbols,
// read clockwise around the tile.
type Signature string

// Reverse returns the signature read in the opposite direction.
// Symbols are runes, so multi-byte symbols survive the reversal.
func (s Signature) Reverse() Signature {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return Signature(r)
}

// Compatible reports whether border a may be placed against border b.
// Borders are read clockwise on both tiles, so the shared edge is
// traversed in opposite directions: a must equal b reversed.
// The relation is symmetric. Complexity: O(len(b)).
func Compatible(a, b Signature) bool {
	if len(a) != len(b) {
		return false
	}
	return a == b.Reverse()
}
