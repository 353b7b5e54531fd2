package collapse

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/wfc/grid"
)

// defaultMaxAttempts bounds restarts when the caller does not.
const defaultMaxAttempts = 10

// Option configures generation via functional arguments.
// If an Option is invalid (e.g. zero attempts), it is recorded and
// surfaced as ErrOptionViolation when the engine is invoked.
type Option func(*Options)

// Options holds parameters and callbacks for a generation call.
type Options struct {
	// Ctx allows cancellation; checked before every step.
	Ctx context.Context

	// Seed for the tile draws. 0 selects a fixed default seed.
	Seed int64

	// MaxAttempts bounds restarts after contradictions (≥1).
	MaxAttempts int

	// Weights, if non-nil, gives a positive selection weight per catalog
	// index. nil means every tile weighs 1.
	Weights []float64

	// TieBreak chooses among cells with equal minimum entropy.
	TieBreak TieBreak

	// Order is the scan order used for selection and TieFirst.
	Order grid.ScanOrder

	// Pins are applied to the fresh grid at the start of every attempt.
	Pins []Pin

	// Workers bounds the parallelism of GenerateMany.
	Workers int

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger

	// OnCollapse is called after every collapse and its propagation.
	// Returning an error aborts generation with that error.
	// GenerateMany calls it from several goroutines.
	OnCollapse func(ev Event) error

	// OnContradiction is called when an attempt ends in contradiction,
	// with the position of the emptied cell.
	OnContradiction func(ev Event)

	// OnRestart is called before attempt number attempt (≥2) starts.
	OnRestart func(attempt int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - Seed 0 (fixed default seed)
//   - MaxAttempts 10
//   - uniform weights, TieFirst, RowMajor
//   - Workers = GOMAXPROCS
//   - discarding logger, no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:             context.Background(),
		MaxAttempts:     defaultMaxAttempts,
		TieBreak:        TieFirst,
		Order:           grid.RowMajor,
		Workers:         runtime.GOMAXPROCS(0),
		Logger:          slog.New(slog.DiscardHandler),
		OnCollapse:      func(Event) error { return nil },
		OnContradiction: func(Event) {},
		OnRestart:       func(int) {},
	}
}

// WithContext sets a custom context for cancellation.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithMaxAttempts bounds the number of attempts.
//
//	n ≥ 1: at most n attempts
//	n < 1: invalid option → ErrOptionViolation
func WithMaxAttempts(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: MaxAttempts must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxAttempts = n
	}
}

// WithWeights sets per-tile selection weights, indexed by catalog index.
// Every weight must be positive and finite; the length is checked
// against the catalog when the engine runs.
func WithWeights(w []float64) Option {
	return func(o *Options) {
		for i, v := range w {
			if !(v > 0) || math.IsInf(v, 0) {
				o.err = fmt.Errorf("%w: weight %d must be positive and finite (%v)", ErrOptionViolation, i, v)
				return
			}
		}
		o.Weights = append([]float64(nil), w...)
	}
}

// WithTieBreak sets the tie-break policy.
func WithTieBreak(t TieBreak) Option {
	return func(o *Options) {
		if t != TieFirst && t != TieRandom {
			o.err = fmt.Errorf("%w: unknown tie-break %d", ErrOptionViolation, t)
			return
		}
		o.TieBreak = t
	}
}

// WithOrder sets the scan order.
func WithOrder(s grid.ScanOrder) Option {
	return func(o *Options) {
		if s != grid.RowMajor && s != grid.Hilbert {
			o.err = fmt.Errorf("%w: unknown scan order %d", ErrOptionViolation, s)
			return
		}
		o.Order = s
	}
}

// WithPin forces (col,row) to tile at the start of every attempt.
// Pins are checked against the grid and catalog when the engine runs.
func WithPin(col, row, tile int) Option {
	return func(o *Options) {
		o.Pins = append(o.Pins, Pin{Col: col, Row: row, Tile: tile})
	}
}

// WithWorkers bounds GenerateMany parallelism (n ≥ 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithLogger sets the diagnostics logger. nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnCollapse registers a callback run after every collapse.
func WithOnCollapse(fn func(ev Event) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCollapse = fn
		}
	}
}

// WithOnContradiction registers a callback run when an attempt contradicts.
func WithOnContradiction(fn func(ev Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnContradiction = fn
		}
	}
}

// WithOnRestart registers a callback run before every retry.
func WithOnRestart(fn func(attempt int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRestart = fn
		}
	}
}

// validate checks options that depend on the catalog or grid size.
func (o *Options) validate(tiles, width, height int) error {
	if o.err != nil {
		return o.err
	}
	if o.Weights != nil && len(o.Weights) != tiles {
		return fmt.Errorf("%w: %d weights for %d tiles", ErrOptionViolation, len(o.Weights), tiles)
	}
	for _, p := range o.Pins {
		if p.Col < 0 || p.Col >= width || p.Row < 0 || p.Row >= height {
			return fmt.Errorf("%w: pin (%d,%d) outside %dx%d grid: %w",
				ErrOptionViolation, p.Col, p.Row, width, height, grid.ErrOutOfBounds)
		}
		if p.Tile < 0 || p.Tile >= tiles {
			return fmt.Errorf("%w: pin tile %d outside catalog of %d", ErrOptionViolation, p.Tile, tiles)
		}
	}
	return nil
}
