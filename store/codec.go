package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/wfc/collapse"
)

var (
	// ErrNotFound indicates that no grid has the requested id.
	ErrNotFound = errors.New("store: grid not found")

	// ErrCorrupt indicates a stored grid that cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt grid")
)

// placementSize is the encoded size of one cell.
const placementSize = 3 * 2

// encodeCells packs res.Cells row by row.
func encodeCells(res *collapse.Result) ([]byte, error) {
	buf := make([]byte, 0, res.Width*res.Height*placementSize)
	for row, cells := range res.Cells {
		if len(cells) != res.Width {
			return nil, fmt.Errorf("store: row %d has %d cells, want %d", row, len(cells), res.Width)
		}
		for col, p := range cells {
			for _, v := range [3]int{p.Tile, p.Source, p.Rotation} {
				if v < 0 || v > math.MaxUint16 {
					return nil, fmt.Errorf("store: value %d at (%d,%d) does not fit in 16 bits", v, col, row)
				}
				buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
			}
		}
	}
	return buf, nil
}

// decodeCells unpacks a width×height blob.
func decodeCells(blob []byte, width, height int) ([][]collapse.Placement, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorrupt, width, height)
	}
	if len(blob) != width*height*placementSize {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d cells", ErrCorrupt, len(blob), width, height)
	}
	cells := make([][]collapse.Placement, height)
	for row := range cells {
		cells[row] = make([]collapse.Placement, width)
		for col := range cells[row] {
			b := blob[(row*width+col)*placementSize:]
			cells[row][col] = collapse.Placement{
				Tile:     int(binary.LittleEndian.Uint16(b[0:])),
				Source:   int(binary.LittleEndian.Uint16(b[2:])),
				Rotation: int(binary.LittleEndian.Uint16(b[4:])),
			}
		}
	}
	return cells, nil
}
