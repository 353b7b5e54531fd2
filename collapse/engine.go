package collapse

import (
	"fmt"

	"github.com/katalvlaran/wfc/adjacency"
	"github.com/katalvlaran/wfc/tileset"
)

// Engine pairs a catalog with its adjacency table. Both are immutable,
// so one Engine may serve concurrent Generate calls.
type Engine struct {
	catalog *tileset.Catalog
	table   *adjacency.Table
}

// NewEngine builds the adjacency table for c.
// Returns ErrNilCatalog for a nil catalog.
// Complexity: O(k²) for k catalog tiles.
func NewEngine(c *tileset.Catalog) (*Engine, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}
	return &Engine{catalog: c, table: adjacency.Build(c)}, nil
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *tileset.Catalog { return e.catalog }

// Table returns the engine's adjacency table.
func (e *Engine) Table() *adjacency.Table { return e.table }

// Generate fills a width×height grid, restarting on contradiction.
//
// Behavior:
//  1. Validate options against the catalog and grid size.
//  2. For attempt = 1..MaxAttempts: reset the grid to full domains, seed
//     the attempt's RNG stream, apply pins, then Step until Done or
//     Contradiction, calling the hooks along the way.
//  3. Done → Result. All attempts contradicted → ErrGenerationFailed.
//
// Errors: grid size errors, ErrOptionViolation, ErrGenerationFailed
// (wrapping ErrContradiction), hook errors, ctx.Err().
func (e *Engine) Generate(width, height int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return e.generate(width, height, o, 0)
}

// generate runs the restart loop for one grid of a (possibly batched) call.
func (e *Engine) generate(width, height int, o Options, gridID int) (*Result, error) {
	r, err := e.newRun(width, height, o)
	if err != nil {
		return nil, err
	}
	log := o.Logger.With("grid", gridID, "width", width, "height", height)
	log.Debug("collapse: generating", "tiles", e.catalog.Len(), "seed", normalizeSeed(o.Seed),
		"order", o.Order.String(), "tie", o.TieBreak.String())

	var last Event
	for attempt := 1; attempt <= o.MaxAttempts; attempt++ {
		if attempt > 1 {
			o.OnRestart(attempt)
		}
		r.reset(attempt, attemptSeed(o.Seed, attempt))

		st, err := e.drive(r, o, gridID)
		if err != nil {
			return nil, err
		}
		if st == Done {
			log.Debug("collapse: done", "attempts", attempt, "steps", r.Steps())
			return r.Result()
		}

		last, _ = r.Contradiction()
		last.Grid = gridID
		log.Info("collapse: contradiction, restarting",
			"attempt", attempt, "col", last.Col, "row", last.Row, "steps", r.Steps())
	}

	log.Warn("collapse: attempts exhausted", "attempts", o.MaxAttempts)
	return nil, fmt.Errorf("%w after %d attempts on %dx%d grid, last at (%d,%d): %w",
		ErrGenerationFailed, o.MaxAttempts, width, height, last.Col, last.Row, ErrContradiction)
}

// drive steps one attempt to a terminal state. The context is checked
// before every step; a cancelled run is discarded.
func (e *Engine) drive(r *Run, o Options, gridID int) (State, error) {
	for r.State() == Running {
		select {
		case <-o.Ctx.Done():
			return r.State(), o.Ctx.Err()
		default:
		}

		ev, _ := r.Step()
		if ev.Tile < 0 {
			continue
		}
		ev.Grid = gridID
		if err := o.OnCollapse(ev); err != nil {
			return r.State(), fmt.Errorf("collapse: OnCollapse error at (%d,%d): %w", ev.Col, ev.Row, err)
		}
	}

	if r.State() == Contradiction {
		ev, _ := r.Contradiction()
		ev.Grid = gridID
		o.OnContradiction(ev)
	}
	return r.State(), nil
}
