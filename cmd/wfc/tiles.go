package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/katalvlaran/wfc/adjacency"
	"github.com/katalvlaran/wfc/tileset"
)

type tilesCmd struct {
	catalog catalogFlags
	glyphs  bool
}

func (c *tilesCmd) Name() string     { return "tiles" }
func (c *tilesCmd) Synopsis() string { return "list the expanded catalog and its adjacency" }
func (c *tilesCmd) Usage() string {
	return "wfc tiles [-theme <name> | -tiles <path>]\n"
}
func (c *tilesCmd) SetFlags(f *flag.FlagSet) {
	c.catalog.register(f)
	f.BoolVar(&c.glyphs, "glyphs", false, "Draw every tile")
}

func (c *tilesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	cat, err := c.catalog.load()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	table := adjacency.Build(cat)

	fmt.Printf("%d base tiles, %d catalog tiles\n", cat.BaseCount(), cat.Len())
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "index\tsource\trot\tborders\tasset\tup\tright\tdown\tleft")
	for _, t := range cat.Tiles() {
		cols := []string{
			fmt.Sprint(t.Index), fmt.Sprint(t.Source), fmt.Sprint(t.Rotation),
			t.Borders.Key(), fmt.Sprint(t.Asset),
		}
		for _, d := range tileset.Directions {
			cols = append(cols, setString(table, t.Index, d))
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	if err := tw.Flush(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if c.glyphs {
		for _, t := range cat.Tiles() {
			g := glyph(t)
			fmt.Printf("\n%d:\n%s\n%s\n%s\n", t.Index, string(g[0][:]), string(g[1][:]), string(g[2][:]))
		}
	}
	return subcommands.ExitSuccess
}

// setString formats the tiles allowed next to a in direction d.
func setString(table *adjacency.Table, a int, d tileset.Direction) string {
	var parts []string
	allowed := table.Allowed(a, d)
	for x, ok := allowed.NextSet(0); ok; x, ok = allowed.NextSet(x + 1) {
		parts = append(parts, fmt.Sprint(x))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
