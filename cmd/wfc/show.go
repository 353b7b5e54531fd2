package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/google/subcommands"

	"github.com/katalvlaran/wfc/adjacency"
	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/store"
	"github.com/katalvlaran/wfc/tileset"
)

type showCmd struct {
	dbPath  string
	id      int64
	indices bool
}

func (c *showCmd) Name() string     { return "show" }
func (c *showCmd) Synopsis() string { return "print grids stored by generate -db" }
func (c *showCmd) Usage() string {
	return "wfc show -db <path> [-id <n>]\n"
}
func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "SQLite file written by generate")
	f.Int64Var(&c.id, "id", 0, "Grid id (0 prints all)")
	f.BoolVar(&c.indices, "indices", false, "Print catalog indices instead of glyphs")
}

func (c *showCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.execute(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *showCmd) execute() error {
	r, err := store.NewReader(c.dbPath)
	if err != nil {
		return err
	}
	defer r.Close()

	metadata, err := r.Metadata()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Printf("# %s: %s\n", k, metadata[k])
	}

	// glyphs need the catalog the grids were built from
	var (
		cat   *tileset.Catalog
		table *adjacency.Table
	)
	if !c.indices {
		if cat, err = catalogFromMetadata(metadata); err != nil {
			log.Printf("printing indices: %v", err)
		} else {
			table = adjacency.Build(cat)
		}
	}

	show := func(id int64, res *collapse.Result) error {
		fmt.Printf("\n# grid %d: %dx%d seed %d attempts %d\n", id, res.Width, res.Height, res.Seed, res.Attempts)
		if cat == nil {
			return renderIndices(os.Stdout, res)
		}
		if err := collapse.Verify(res, table); err != nil {
			return fmt.Errorf("grid %d does not match %s: %w", id, metadata["tiles"], err)
		}
		return renderGlyphs(os.Stdout, res, cat)
	}

	if c.id != 0 {
		res, err := r.ReadResult(c.id)
		if err != nil {
			return err
		}
		return show(c.id, res)
	}
	return r.VisitResults(show)
}

func catalogFromMetadata(metadata map[string]string) (*tileset.Catalog, error) {
	name, ok := metadata["tiles"]
	if !ok {
		return nil, errors.New("no tiles recorded")
	}
	cf := catalogFlags{theme: name}
	if _, err := tileset.Theme(name); err != nil {
		cf = catalogFlags{tiles: name}
	}
	return cf.load()
}
