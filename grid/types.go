package grid

import (
	"errors"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wfc/tileset"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a non-positive width or height.
	ErrEmptyGrid = errors.New("grid: width and height must be positive")
	// ErrNoTiles indicates a non-positive tile count.
	ErrNoTiles = errors.New("grid: tile count must be positive")
	// ErrOutOfBounds indicates coordinates outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinates out of bounds")
)

// ScanOrder selects the order in which cells are enumerated.
type ScanOrder int

const (
	// RowMajor scans left to right, top to bottom.
	RowMajor ScanOrder = iota
	// Hilbert follows a Hilbert curve, so consecutive cells are neighbors
	// and ties grow as a compact blob instead of a row.
	Hilbert
)

// String implements fmt.Stringer.
func (o ScanOrder) String() string {
	switch o {
	case RowMajor:
		return "row"
	case Hilbert:
		return "hilbert"
	}
	return "invalid"
}

// Cell is one grid position during generation.
type Cell struct {
	Collapsed bool           // Set once the cell has been assigned a tile
	Domain    *bitset.BitSet // Tile indices the cell may still become
}

// Entropy returns the domain size.
func (c *Cell) Entropy() int { return int(c.Domain.Count()) }

// Tile returns the only tile left in the domain, or false when the
// domain is empty or holds more than one tile.
func (c *Cell) Tile() (int, bool) {
	if c.Domain.Count() != 1 {
		return 0, false
	}
	i, _ := c.Domain.NextSet(0)
	return int(i), true
}

// Neighbor is an in-bounds cell adjacent to another one.
type Neighbor struct {
	Col, Row int
	Dir      tileset.Direction // Direction of the neighbor as seen from the origin cell
}

// offsets are (dx, dy) steps indexed by tileset.Direction.
var offsets = [tileset.NumDirections][2]int{
	tileset.Up:    {0, -1},
	tileset.Right: {1, 0},
	tileset.Down:  {0, 1},
	tileset.Left:  {-1, 0},
}

// Grid is a Width×Height array of cells, indexed (col, row).
type Grid struct {
	Width, Height int
	TileCount     int
	cells         []Cell
	full          *bitset.BitSet
}
