package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/tileset"
)

// catalogFlags selects a built-in theme or a YAML tile file.
type catalogFlags struct {
	theme string
	tiles string
}

func (c *catalogFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.theme, "theme", "circuit", fmt.Sprintf("Built-in tile theme %v", tileset.ThemeNames()))
	f.StringVar(&c.tiles, "tiles", "", "YAML tile file (overrides -theme)")
}

// name identifies the tile source in metadata and logs.
func (c *catalogFlags) name() string {
	if c.tiles != "" {
		return c.tiles
	}
	return c.theme
}

func (c *catalogFlags) load() (*tileset.Catalog, error) {
	base, err := c.base()
	if err != nil {
		return nil, err
	}
	return tileset.Build(base)
}

func (c *catalogFlags) base() ([]tileset.BaseTile, error) {
	if c.tiles == "" {
		return tileset.Theme(c.theme)
	}
	f, err := os.Open(c.tiles)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	base, err := tileset.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.tiles, err)
	}
	return base, nil
}

// runFlags holds the generation parameters shared by generate and serve.
type runFlags struct {
	width, height int
	seed          int64
	attempts      int
	order         string
	tie           string
	verbose       bool
}

func (r *runFlags) register(f *flag.FlagSet) {
	f.IntVar(&r.width, "width", 16, "Grid width in cells")
	f.IntVar(&r.height, "height", 8, "Grid height in cells")
	f.Int64Var(&r.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	f.IntVar(&r.attempts, "attempts", 10, "Maximum attempts per grid")
	f.StringVar(&r.order, "order", "row", "Scan order (row, hilbert)")
	f.StringVar(&r.tie, "tie", "first", "Tie-break among equal domains (first, random)")
	f.BoolVar(&r.verbose, "v", false, "Verbose logging")
}

// options resolves the flags into engine options. A zero seed is
// replaced by a clock seed, which is returned so it can be reported.
func (r *runFlags) options(logger *slog.Logger) ([]collapse.Option, int64, error) {
	order, err := parseOrder(r.order)
	if err != nil {
		return nil, 0, err
	}
	tie, err := parseTie(r.tie)
	if err != nil {
		return nil, 0, err
	}
	seed := r.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return []collapse.Option{
		collapse.WithSeed(seed),
		collapse.WithMaxAttempts(r.attempts),
		collapse.WithOrder(order),
		collapse.WithTieBreak(tie),
		collapse.WithLogger(logger),
	}, seed, nil
}

func (r *runFlags) logger() *slog.Logger {
	level := slog.LevelWarn
	if r.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseOrder(s string) (grid.ScanOrder, error) {
	for _, o := range []grid.ScanOrder{grid.RowMajor, grid.Hilbert} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("invalid scan order: %q", s)
}

func parseTie(s string) (collapse.TieBreak, error) {
	for _, t := range []collapse.TieBreak{collapse.TieFirst, collapse.TieRandom} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid tie-break: %q", s)
}
