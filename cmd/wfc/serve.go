package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/live"
)

type serveCmd struct {
	catalog  catalogFlags
	run      runFlags
	addr     string
	interval time.Duration
	delay    time.Duration
}

func (c *serveCmd) Name() string     { return "serve" }
func (c *serveCmd) Synopsis() string { return "stream generation progress over websocket" }
func (c *serveCmd) Usage() string {
	return "wfc serve [-addr <host:port> -interval <duration> -delay <duration>]\n" +
		"Clients connect to ws://<addr>/ws and receive JSON messages.\n"
}
func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.catalog.register(f)
	c.run.register(f)
	f.StringVar(&c.addr, "addr", "localhost:8080", "Listen address")
	f.DurationVar(&c.interval, "interval", 2*time.Second, "Pause between grids")
	f.DurationVar(&c.delay, "delay", 10*time.Millisecond, "Pause after every collapse")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.execute(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) execute(ctx context.Context) error {
	logger := c.run.logger()
	cat, err := c.catalog.load()
	if err != nil {
		return err
	}
	engine, err := collapse.NewEngine(cat)
	if err != nil {
		return err
	}
	// validate the flags once up front
	if _, _, err := c.run.options(logger); err != nil {
		return err
	}

	hub := live.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle("/ws", live.Handler(hub))
	srv := &http.Server{Addr: c.addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
		cancel()
	}()
	log.Printf("streaming %s grids on ws://%s/ws", c.catalog.name(), c.addr)

	genErr := c.loop(ctx, engine, hub, logger)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return genErr
}

// loop generates grids until ctx ends, streaming each one to hub. With
// a fixed -seed, grid i uses the same seed as grid i of generate -n.
func (c *serveCmd) loop(ctx context.Context, engine *collapse.Engine, hub *live.Hub, logger *slog.Logger) error {
	base := c.run.seed
	for i := 0; ; i++ {
		opts, seed, err := c.run.options(logger)
		if err != nil {
			return err
		}
		if base != 0 {
			seed = collapse.BatchSeed(base, i)
			opts = append(opts, collapse.WithSeed(seed))
		}
		opts = append(opts,
			collapse.WithContext(ctx),
			collapse.WithOnRestart(hub.OnRestart),
			collapse.WithOnContradiction(func(ev collapse.Event) {
				ev.Grid = i
				hub.OnContradiction(ev)
			}),
			collapse.WithOnCollapse(func(ev collapse.Event) error {
				ev.Grid = i
				if err := hub.OnCollapse(ev); err != nil {
					return err
				}
				return sleep(ctx, c.delay)
			}),
		)

		res, err := engine.Generate(c.run.width, c.run.height, opts...)
		if errors.Is(err, context.Canceled) {
			return err
		}
		hub.Publish(i, res, err)
		logger.Info("grid published", "grid", i, "seed", seed, "clients", hub.Len(), "err", err)

		if err := sleep(ctx, c.interval); err != nil {
			return err
		}
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
