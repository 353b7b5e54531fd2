package grid

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wfc/tileset"
)

// New allocates a width×height grid whose cells may each be any of
// tileCount tiles. Returns ErrEmptyGrid or ErrNoTiles for bad sizes.
// Complexity: O(W×H×k/64) time and memory.
func New(width, height, tileCount int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if tileCount <= 0 {
		return nil, ErrNoTiles
	}
	full := bitset.New(uint(tileCount))
	full.FlipRange(0, uint(tileCount))
	g := &Grid{
		Width:     width,
		Height:    height,
		TileCount: tileCount,
		cells:     make([]Cell, width*height),
		full:      full,
	}
	for i := range g.cells {
		g.cells[i].Domain = full.Clone()
	}
	return g, nil
}

// Reset restores every cell to the full domain, not collapsed.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.full.Copy(g.cells[i].Domain)
		g.cells[i].Collapsed = false
	}
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (col,row) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Width && row >= 0 && row < g.Height
}

// Index maps (col,row) to a row-major index: row*Width + col.
// The coordinates are not checked.
func (g *Grid) Index(col, row int) int {
	return row*g.Width + col
}

// Coordinate converts a row-major index back to (col,row).
func (g *Grid) Coordinate(idx int) (col, row int) {
	return idx % g.Width, idx / g.Width
}

// At returns the cell at row-major index idx. It panics if idx is out of range.
func (g *Grid) At(idx int) *Cell { return &g.cells[idx] }

// Cell returns the cell at (col,row), or ErrOutOfBounds.
func (g *Grid) Cell(col, row int) (*Cell, error) {
	if !g.InBounds(col, row) {
		return nil, ErrOutOfBounds
	}
	return &g.cells[g.Index(col, row)], nil
}

// Neighbors returns the in-bounds orthogonal neighbors of (col,row) in
// direction order (up, right, down, left). Border cells have fewer than
// four. Returns ErrOutOfBounds for coordinates outside the grid.
func (g *Grid) Neighbors(col, row int) ([]Neighbor, error) {
	if !g.InBounds(col, row) {
		return nil, ErrOutOfBounds
	}
	return g.AppendNeighbors(make([]Neighbor, 0, len(offsets)), col, row), nil
}

// AppendNeighbors appends the neighbors of an in-bounds (col,row) to dst.
// It is the allocation-free form of Neighbors for hot loops.
func (g *Grid) AppendNeighbors(dst []Neighbor, col, row int) []Neighbor {
	for d, off := range offsets {
		nc, nr := col+off[0], row+off[1]
		if !g.InBounds(nc, nr) {
			continue
		}
		dst = append(dst, Neighbor{Col: nc, Row: nr, Dir: tileset.Direction(d)})
	}
	return dst
}

// Collapse fixes the cell at idx to tile and marks it collapsed.
func (g *Grid) Collapse(idx, tile int) {
	c := &g.cells[idx]
	c.Domain.ClearAll()
	c.Domain.Set(uint(tile))
	c.Collapsed = true
}

// IsFullyCollapsed reports whether every cell is collapsed.
func (g *Grid) IsFullyCollapsed() bool {
	for i := range g.cells {
		if !g.cells[i].Collapsed {
			return false
		}
	}
	return true
}

// HasContradiction reports whether any cell has an empty domain.
// Collapsed cells count too: propagation may empty them.
func (g *Grid) HasContradiction() bool {
	for i := range g.cells {
		if g.cells[i].Domain.None() {
			return true
		}
	}
	return false
}
