package collapse

import (
	"math"
	"math/rand"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/wfc/grid"
)

// Run is a single generation attempt. It owns its grid and RNG and must
// be driven from one goroutine at a time.
type Run struct {
	eng     *Engine
	g       *grid.Grid
	rng     *rand.Rand
	order   []int
	weights []float64
	tie     TieBreak
	pins    []Pin

	state     State
	attempt   int
	seed      int64
	steps     int
	collapsed int
	failAt    int // index of the emptied cell, -1 when none

	// propagation scratch, reused across steps
	stack   []int
	support *bitset.BitSet
	nbuf    []grid.Neighbor
}

// NewRun prepares a single attempt on a fresh width×height grid.
// Seed, Weights, TieBreak, Order and Pins apply; hooks, MaxAttempts and
// Workers are ignored since the caller drives the run with Step.
// Returns grid errors for bad sizes and ErrOptionViolation for bad options.
func (e *Engine) NewRun(width, height int, opts ...Option) (*Run, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r, err := e.newRun(width, height, o)
	if err != nil {
		return nil, err
	}
	r.reset(1, normalizeSeed(o.Seed))
	return r, nil
}

// newRun allocates the run state; reset must be called before stepping.
func (e *Engine) newRun(width, height int, o Options) (*Run, error) {
	g, err := grid.New(width, height, e.catalog.Len())
	if err != nil {
		return nil, err
	}
	if err := o.validate(e.catalog.Len(), width, height); err != nil {
		return nil, err
	}
	return &Run{
		eng:     e,
		g:       g,
		order:   g.Order(o.Order),
		weights: o.Weights,
		tie:     o.TieBreak,
		pins:    o.Pins,
		failAt:  -1,
		stack:   make([]int, 0, g.Len()),
		support: bitset.New(uint(e.catalog.Len())),
		nbuf:    make([]grid.Neighbor, 0, 4),
	}, nil
}

// reset restores the full-domain grid, reseeds the RNG and applies pins.
func (r *Run) reset(attempt int, seed int64) {
	r.g.Reset()
	r.rng = rngFromSeed(seed)
	r.seed = seed
	r.attempt = attempt
	r.state = Running
	r.steps = 0
	r.collapsed = 0
	r.failAt = -1
	for _, p := range r.pins {
		if r.pin(r.g.Index(p.Col, p.Row), p.Tile) != Running {
			return
		}
	}
}

// State returns the current state.
func (r *Run) State() State { return r.state }

// Grid exposes the live grid for inspection. Callers must not mutate it.
func (r *Run) Grid() *grid.Grid { return r.g }

// Steps returns the number of collapses performed in this attempt.
func (r *Run) Steps() int { return r.steps }

// Seed returns the seed driving this attempt.
func (r *Run) Seed() int64 { return r.seed }

// Contradiction returns the event describing the emptied cell, if any.
func (r *Run) Contradiction() (Event, bool) {
	if r.failAt < 0 {
		return Event{}, false
	}
	col, row := r.g.Coordinate(r.failAt)
	return Event{Attempt: r.attempt, Step: r.steps, Col: col, Row: row, Tile: -1}, true
}

// Step performs one select → collapse → propagate iteration and returns
// the collapse it made (Tile is -1 when nothing was collapsed) together
// with the new state. A finished run returns its state unchanged.
func (r *Run) Step() (Event, State) {
	ev := Event{Attempt: r.attempt, Step: r.steps, Tile: -1}
	if r.state != Running {
		return ev, r.state
	}

	idx, st := r.selectCell()
	if st != Running {
		r.state = st
		return ev, st
	}

	tile := r.draw(r.g.At(idx).Domain)
	r.g.Collapse(idx, tile)
	r.collapsed++
	r.steps++
	ev.Step = r.steps
	ev.Col, ev.Row = r.g.Coordinate(idx)
	ev.Tile = tile

	switch {
	case !r.propagate(idx):
		r.state = Contradiction
	case r.collapsed == r.g.Len():
		r.state = Done
	}
	return ev, r.state
}

// Pin forces (col,row) to tile and propagates. Pinning a tile the cell
// can no longer take ends the run in Contradiction. Returns
// grid.ErrOutOfBounds, ErrOptionViolation for a bad tile, or ErrFinished.
func (r *Run) Pin(col, row, tile int) (State, error) {
	if !r.g.InBounds(col, row) {
		return r.state, grid.ErrOutOfBounds
	}
	if tile < 0 || tile >= r.g.TileCount {
		return r.state, ErrOptionViolation
	}
	if r.state != Running {
		return r.state, ErrFinished
	}
	return r.pin(r.g.Index(col, row), tile), nil
}

// pin intersects the cell's domain with {tile}, collapses and propagates.
func (r *Run) pin(idx, tile int) State {
	c := r.g.At(idx)
	if !c.Domain.Test(uint(tile)) {
		c.Domain.ClearAll()
		r.failAt = idx
		r.state = Contradiction
		return r.state
	}
	if !c.Collapsed {
		r.collapsed++
		r.steps++
	}
	r.g.Collapse(idx, tile)
	switch {
	case !r.propagate(idx):
		r.state = Contradiction
	case r.collapsed == r.g.Len():
		r.state = Done
	}
	return r.state
}

// Result converts a Done run into a Result. Returns ErrNotDone otherwise.
func (r *Run) Result() (*Result, error) {
	if r.state != Done {
		return nil, ErrNotDone
	}
	res := &Result{
		Width:    r.g.Width,
		Height:   r.g.Height,
		Seed:     r.seed,
		Attempts: r.attempt,
		Cells:    make([][]Placement, r.g.Height),
	}
	for row := range res.Cells {
		res.Cells[row] = make([]Placement, r.g.Width)
		for col := range res.Cells[row] {
			t, _ := r.g.At(r.g.Index(col, row)).Tile()
			tile := r.eng.catalog.Tile(t)
			res.Cells[row][col] = Placement{Tile: t, Source: tile.Source, Rotation: tile.Rotation}
		}
	}
	return res, nil
}

// selectCell returns the non-collapsed cell with the smallest non-empty
// domain. With no such cell the state is Contradiction when an empty
// non-collapsed domain exists, Done otherwise.
func (r *Run) selectCell() (int, State) {
	best, bestN, ties := -1, math.MaxInt, 0
	empty := false
	for _, idx := range r.order {
		c := r.g.At(idx)
		if c.Collapsed {
			continue
		}
		n := c.Entropy()
		switch {
		case n == 0:
			empty = true
			if r.failAt < 0 {
				r.failAt = idx
			}
		case n < bestN:
			best, bestN, ties = idx, n, 1
		case n == bestN && r.tie == TieRandom:
			// reservoir sampling keeps every tied cell equally likely
			ties++
			if r.rng.Intn(ties) == 0 {
				best = idx
			}
		}
		if bestN == 1 && r.tie == TieFirst {
			break
		}
	}
	switch {
	case best >= 0:
		return best, Running
	case empty:
		return -1, Contradiction
	}
	return -1, Done
}

// draw picks one tile of a non-empty domain, weighted when weights are set.
func (r *Run) draw(domain *bitset.BitSet) int {
	if r.weights == nil {
		k := r.rng.Intn(int(domain.Count()))
		x, _ := domain.NextSet(0)
		for ; k > 0; k-- {
			x, _ = domain.NextSet(x + 1)
		}
		return int(x)
	}

	var total float64
	for x, ok := domain.NextSet(0); ok; x, ok = domain.NextSet(x + 1) {
		total += r.weights[x]
	}
	target := r.rng.Float64() * total
	last := -1
	for x, ok := domain.NextSet(0); ok; x, ok = domain.NextSet(x + 1) {
		last = int(x)
		target -= r.weights[x]
		if target < 0 {
			return last
		}
	}
	// rounding left target at or just above zero
	return last
}
