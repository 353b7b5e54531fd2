package tileset

import (
	"errors"
	"strings"
)

// Sentinel errors for catalog construction.
var (
	// ErrEmptyTileSet indicates Build was called without base tiles.
	ErrEmptyTileSet = errors.New("tileset: at least one base tile is required")
	// ErrInvalidTileDefinition indicates a base tile with a wrong border count or an empty border.
	ErrInvalidTileDefinition = errors.New("tileset: invalid tile definition")
	// ErrUnknownTheme indicates a theme name that is not registered.
	ErrUnknownTheme = errors.New("tileset: unknown theme")
)

// Direction names one side of a tile, in clockwise order starting at the top.
type Direction uint8

const (
	// Up is the top border.
	Up Direction = iota
	// Right is the right border.
	Right
	// Down is the bottom border.
	Down
	// Left is the left border.
	Left
)

// NumDirections is the number of borders of a square tile.
const NumDirections = 4

// Directions lists every direction in border order.
var Directions = [NumDirections]Direction{Up, Right, Down, Left}

// Opposite returns the facing direction: Up↔Down, Right↔Left.
func (d Direction) Opposite() Direction { return (d + 2) & 3 }

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "invalid"
}

// Borders holds the four border signatures of a tile in (up, right, down, left) order.
type Borders [NumDirections]Signature

// Key returns the canonical identity of a border tuple, e.g. "ABB,BCB,BBA,AAA".
// Two tiles are duplicates exactly when their keys are equal.
func (b Borders) Key() string {
	parts := make([]string, NumDirections)
	for i, s := range b {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

// BaseTile is an input tile definition.
type BaseTile struct {
	// Borders must hold exactly four non-empty signatures (up, right, down, left).
	Borders []Signature
	// Asset is an opaque handle for the renderer (file name, image, id).
	// The catalog passes it through to every rotation untouched.
	Asset any
	// SelfExcluding forbids this tile, in any rotation, from touching another copy of itself.
	SelfExcluding bool
}

// Tile is an immutable catalog entry.
type Tile struct {
	Index         int     // Contiguous catalog index
	Borders       Borders // Border signatures after rotation
	Source        int     // Index of the base tile this entry was derived from
	Rotation      int     // Clockwise quarter turns applied to the base tile (0..3)
	Asset         any     // Opaque asset handle of the base tile
	SelfExcluding bool    // Copied from the base tile
}

// Catalog is the deduplicated, indexed set of tiles. It is immutable once
// built and may be shared by any number of concurrent generation runs.
type Catalog struct {
	tiles []Tile
	bases int
}

// Len returns the number of tiles in the catalog.
func (c *Catalog) Len() int { return len(c.tiles) }

// BaseCount returns the number of base tiles the catalog was built from.
func (c *Catalog) BaseCount() int { return c.bases }

// Tile returns the tile with catalog index i. It panics if i is out of range.
func (c *Catalog) Tile(i int) Tile { return c.tiles[i] }

// Tiles returns a copy of every tile in index order.
func (c *Catalog) Tiles() []Tile {
	out := make([]Tile, len(c.tiles))
	copy(out, c.tiles)
	return out
}
