package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/tileset"
)

// glyph draws a tile as a 3×3 block: corners from the border ends,
// edge midpoints from the middle rune of each border.
func glyph(t tileset.Tile) [3][3]rune {
	var g [3][3]rune
	up, right := []rune(string(t.Borders[tileset.Up])), []rune(string(t.Borders[tileset.Right]))
	down, left := []rune(string(t.Borders[tileset.Down])), []rune(string(t.Borders[tileset.Left]))

	g[0][0], g[0][2] = up[0], up[len(up)-1]
	g[2][2], g[2][0] = down[0], down[len(down)-1]
	g[0][1] = up[len(up)/2]
	g[1][2] = right[len(right)/2]
	g[2][1] = down[len(down)/2]
	g[1][0] = left[len(left)/2]
	g[1][1] = '+'
	return g
}

// renderGlyphs writes res using 3×3 glyphs from c.
func renderGlyphs(w io.Writer, res *collapse.Result, c *tileset.Catalog) error {
	var sb strings.Builder
	for row := 0; row < res.Height; row++ {
		var lines [3]strings.Builder
		for col := 0; col < res.Width; col++ {
			g := glyph(c.Tile(res.At(col, row).Tile))
			for i := range lines {
				lines[i].WriteString(string(g[i][:]))
			}
		}
		for i := range lines {
			sb.WriteString(lines[i].String())
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// renderIndices writes res as right-aligned catalog indices.
func renderIndices(w io.Writer, res *collapse.Result) error {
	for _, row := range res.Indices() {
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = fmt.Sprintf("%3d", v)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, "")); err != nil {
			return err
		}
	}
	return nil
}
