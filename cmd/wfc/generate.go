package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/store"
)

type generateCmd struct {
	catalog catalogFlags
	run     runFlags
	count   int
	workers int
	dbPath  string
	indices bool
	quiet   bool
}

func (c *generateCmd) Name() string     { return "generate" }
func (c *generateCmd) Synopsis() string { return "generate one or more grids" }
func (c *generateCmd) Usage() string {
	return "wfc generate [-theme <name> | -tiles <path>] [-width <n> -height <n> -seed <n> -n <count> -db <path>]\n"
}
func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	c.catalog.register(f)
	c.run.register(f)
	f.IntVar(&c.count, "n", 1, "Number of grids")
	f.IntVar(&c.workers, "workers", 0, "Parallel grids when -n > 1 (0 uses GOMAXPROCS)")
	f.StringVar(&c.dbPath, "db", "", "Append grids to this SQLite file")
	f.BoolVar(&c.indices, "indices", false, "Print catalog indices instead of glyphs")
	f.BoolVar(&c.quiet, "q", false, "Do not print grids")
}

func (c *generateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := c.execute(ctx); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *generateCmd) execute(ctx context.Context) error {
	logger := c.run.logger()
	cat, err := c.catalog.load()
	if err != nil {
		return err
	}
	engine, err := collapse.NewEngine(cat)
	if err != nil {
		return err
	}
	opts, seed, err := c.run.options(logger)
	if err != nil {
		return err
	}
	opts = append(opts, collapse.WithContext(ctx))
	if c.workers > 0 {
		opts = append(opts, collapse.WithWorkers(c.workers))
	}
	fmt.Fprintf(os.Stderr, "seed %d\n", seed)

	var results []*collapse.Result
	if c.count == 1 {
		res, err := engine.Generate(c.run.width, c.run.height, opts...)
		if err != nil {
			return err
		}
		results = []*collapse.Result{res}
	} else {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("collapses"),
			progressbar.OptionShowIts(),
			progressbar.OptionShowCount(),
		)
		opts = append(opts, collapse.WithOnCollapse(func(collapse.Event) error {
			return bar.Add(1)
		}))
		results, err = engine.GenerateMany(c.count, c.run.width, c.run.height, opts...)
		bar.Finish()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
	}

	if c.dbPath != "" {
		if err := c.save(results, seed, logger); err != nil {
			return err
		}
	}
	if c.quiet {
		return nil
	}
	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		if c.indices {
			err = renderIndices(os.Stdout, res)
		} else {
			err = renderGlyphs(os.Stdout, res, cat)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *generateCmd) save(results []*collapse.Result, seed int64, logger *slog.Logger) error {
	w, err := store.NewWriter(c.dbPath, store.WithLogger(logger), store.WithMetadata(map[string]string{
		"tiles":  c.catalog.name(),
		"seed":   strconv.FormatInt(seed, 10),
		"order":  c.run.order,
		"tie":    c.run.tie,
		"format": "wfc-grid/1",
	}))
	if err != nil {
		return err
	}
	for _, res := range results {
		if _, err := w.WriteResult(res); err != nil {
			w.Close()
			return err
		}
	}
	logger.Info("grids saved", "path", c.dbPath, "count", len(results))
	return w.Close()
}
