package tileset

import "fmt"

// Rotate returns the border tuple of the tile turned n quarter turns
// clockwise: the new top border is the old left one, and so on.
// Negative n turns counter-clockwise; Rotate(4) is the identity.
// Complexity: O(1).
func (b Borders) Rotate(n int) Borders {
	var out Borders
	for i := range NumDirections {
		out[i] = b[((i-n)%NumDirections+NumDirections)%NumDirections]
	}
	return out
}

// Build validates base, derives every rotation and returns the
// deduplicated catalog.
//
// Steps:
//  1. Validate: at least one tile, exactly four non-empty borders each.
//  2. Base tiles keep Source = position in base, Rotation = 0.
//  3. Append rotations 1, 2, 3 of every base tile (Source preserved).
//  4. Dedup: first occurrence of each border tuple wins; re-index from 0.
//
// Returns ErrEmptyTileSet or a wrapped ErrInvalidTileDefinition.
// Complexity: O(k) tiles, O(k) memory.
func Build(base []BaseTile) (*Catalog, error) {
	if len(base) == 0 {
		return nil, ErrEmptyTileSet
	}
	all := make([]Tile, 0, len(base)*NumDirections)
	for i, bt := range base {
		borders, err := validate(i, bt)
		if err != nil {
			return nil, err
		}
		all = append(all, Tile{
			Borders:       borders,
			Source:        i,
			Asset:         bt.Asset,
			SelfExcluding: bt.SelfExcluding,
		})
	}
	// rotations go after all base tiles so a base tile is never shadowed
	// by a rotation of an earlier one
	for i := range base {
		src := all[i]
		for r := 1; r < NumDirections; r++ {
			rot := src
			rot.Borders = src.Borders.Rotate(r)
			rot.Rotation = r
			all = append(all, rot)
		}
	}

	return &Catalog{tiles: Dedup(all), bases: len(base)}, nil
}

// Dedup drops tiles whose border tuple was already seen, keeping the
// first occurrence, and re-indexes the survivors contiguously from 0.
// Source, Rotation and Asset of survivors are kept. Dedup is idempotent.
// Complexity: O(n) time and memory.
func Dedup(tiles []Tile) []Tile {
	seen := make(map[string]struct{}, len(tiles))
	out := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		key := t.Borders.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		t.Index = len(out)
		out = append(out, t)
	}
	return out
}

// validate checks one base tile definition and converts its borders.
func validate(i int, bt BaseTile) (Borders, error) {
	var b Borders
	if len(bt.Borders) != NumDirections {
		return b, fmt.Errorf("%w: tile %d has %d borders, want %d",
			ErrInvalidTileDefinition, i, len(bt.Borders), NumDirections)
	}
	for d, s := range bt.Borders {
		if s == "" {
			return b, fmt.Errorf("%w: tile %d has an empty %s border",
				ErrInvalidTileDefinition, i, Direction(d))
		}
		b[d] = s
	}
	return b, nil
}
