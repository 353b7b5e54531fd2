package adjacency

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wfc/tileset"
)

// Table maps (tile, direction) to the set of tiles placeable in that direction.
type Table struct {
	n       int
	allowed [][tileset.NumDirections]*bitset.BitSet
}

// Build derives the table from a catalog.
// Complexity: O(k²) pair checks, O(k²) bits of memory.
func Build(c *tileset.Catalog) *Table {
	n := c.Len()
	t := &Table{
		n:       n,
		allowed: make([][tileset.NumDirections]*bitset.BitSet, n),
	}
	tiles := c.Tiles()
	for i := range tiles {
		for _, d := range tileset.Directions {
			t.allowed[i][d] = bitset.New(uint(n))
		}
	}
	for _, a := range tiles {
		for _, b := range tiles {
			if a.Source == b.Source && a.SelfExcluding {
				continue
			}
			for _, d := range tileset.Directions {
				if tileset.Compatible(a.Borders[d], b.Borders[d.Opposite()]) {
					t.allowed[a.Index][d].Set(uint(b.Index))
				}
			}
		}
	}
	return t
}

// Len returns the number of tiles the table covers.
func (t *Table) Len() int { return t.n }

// Allowed returns the tiles placeable in direction d of tile a.
// The returned set is shared; callers must not modify it.
func (t *Table) Allowed(a int, d tileset.Direction) *bitset.BitSet {
	return t.allowed[a][d]
}

// Has reports whether tile b may be placed in direction d of tile a.
func (t *Table) Has(a int, d tileset.Direction, b int) bool {
	return t.allowed[a][d].Test(uint(b))
}

// Support writes into dst the union of Allowed(x, d) over every x in
// domain: the tiles a neighbor in direction d may still become.
// dst is cleared first; a nil dst is allocated. dst must not alias domain.
// Complexity: O(|domain|·k/64).
func (t *Table) Support(domain *bitset.BitSet, d tileset.Direction, dst *bitset.BitSet) *bitset.BitSet {
	if dst == nil {
		dst = bitset.New(uint(t.n))
	} else {
		dst.ClearAll()
	}
	for x, ok := domain.NextSet(0); ok; x, ok = domain.NextSet(x + 1) {
		dst.InPlaceUnion(t.allowed[x][d])
	}
	return dst
}
