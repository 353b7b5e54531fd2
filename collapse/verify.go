package collapse

import (
	"fmt"

	"github.com/katalvlaran/wfc/adjacency"
	"github.com/katalvlaran/wfc/tileset"
)

// Verify checks that every horizontally and vertically adjacent pair of
// res is allowed by table. Returns ErrInconsistent naming the first
// offending pair, or nil.
// Complexity: O(W×H).
func Verify(res *Result, table *adjacency.Table) error {
	if len(res.Cells) != res.Height {
		return fmt.Errorf("%w: %d rows, want %d", ErrInconsistent, len(res.Cells), res.Height)
	}
	for row := 0; row < res.Height; row++ {
		if len(res.Cells[row]) != res.Width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInconsistent, row, len(res.Cells[row]), res.Width)
		}
		for col := 0; col < res.Width; col++ {
			a := res.Cells[row][col].Tile
			if a < 0 || a >= table.Len() {
				return fmt.Errorf("%w: tile %d at (%d,%d) outside catalog", ErrInconsistent, a, col, row)
			}
			if col+1 < res.Width {
				if b := res.Cells[row][col+1].Tile; !inRange(b, table) || !table.Has(a, tileset.Right, b) {
					return fmt.Errorf("%w: tile %d at (%d,%d) cannot sit left of tile %d",
						ErrInconsistent, a, col, row, b)
				}
			}
			if row+1 < res.Height {
				if b := res.Cells[row+1][col].Tile; !inRange(b, table) || !table.Has(a, tileset.Down, b) {
					return fmt.Errorf("%w: tile %d at (%d,%d) cannot sit above tile %d",
						ErrInconsistent, a, col, row, b)
				}
			}
		}
	}
	return nil
}

func inRange(tile int, table *adjacency.Table) bool {
	return tile >= 0 && tile < table.Len()
}
