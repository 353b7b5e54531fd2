package grid

import (
	"math/bits"

	"github.com/google/hilbert"
)

// Order returns every cell index exactly once, in the requested order.
// Unknown orders fall back to RowMajor.
//
// Hilbert walks a curve over the smallest power-of-two square covering
// the grid and skips points outside it, so non-square grids are fine.
// Complexity: O(S²) for Hilbert with S = next power of two ≥ max(W,H);
// O(W×H) for RowMajor.
func (g *Grid) Order(o ScanOrder) []int {
	out := make([]int, 0, len(g.cells))
	if o != Hilbert {
		for i := range g.cells {
			out = append(out, i)
		}
		return out
	}

	side := ceilPow2(max(g.Width, g.Height))
	h, err := hilbert.NewHilbert(side)
	if err != nil {
		// side is always a positive power of two
		panic(err)
	}
	for t := 0; t < side*side && len(out) < len(g.cells); t++ {
		x, y, err := h.Map(t)
		if err != nil {
			panic(err)
		}
		if g.InBounds(x, y) {
			out = append(out, g.Index(x, y))
		}
	}
	return out
}

// ceilPow2 returns the smallest power of two ≥ n (n ≥ 1).
func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
