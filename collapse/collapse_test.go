package collapse_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfc/collapse"
	"github.com/katalvlaran/wfc/grid"
	"github.com/katalvlaran/wfc/tileset"
)

// newEngine builds an engine from base tiles or fails the test.
func newEngine(t testing.TB, base []tileset.BaseTile) *collapse.Engine {
	t.Helper()
	c, err := tileset.Build(base)
	require.NoError(t, err)
	e, err := collapse.NewEngine(c)
	require.NoError(t, err)
	return e
}

// uniform returns a base tile with the same signature on every side.
func uniform(sig tileset.Signature) tileset.BaseTile {
	return tileset.BaseTile{Borders: []tileset.Signature{sig, sig, sig, sig}}
}

// hostile is a tile that cannot touch anything: "AB" never equals its own
// reverse and has a different length from "AAA".
var hostile = uniform("AB")

func TestNewEngine_Nil(t *testing.T) {
	e, err := collapse.NewEngine(nil)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, collapse.ErrNilCatalog)
}

//----------------------------------------------------------------------------//
// Scenarios
//----------------------------------------------------------------------------//

// TestGenerate_DuplicateTilesOneCell: two identical all-"AAA" tiles dedup
// to one, and a 1×1 grid collapses to it.
func TestGenerate_DuplicateTilesOneCell(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{uniform("AAA"), uniform("AAA")})
	require.Equal(t, 1, e.Catalog().Len())

	res, err := e.Generate(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, collapse.Placement{Tile: 0, Source: 0, Rotation: 0}, res.At(0, 0))
}

func TestGenerate_SingleTileFillsGrid(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{uniform("AAA")})
	var collapses int
	res, err := e.Generate(3, 3, collapse.WithOnCollapse(func(collapse.Event) error {
		collapses++
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, 9, collapses)
	assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, res.Indices())
	assert.NoError(t, collapse.Verify(res, e.Table()))
}

// TestGenerate_HostileTileRestarts: picking the hostile tile anywhere on a
// 3×3 grid contradicts at once, so across seeds the restart path runs and
// every success is the all-"AAA" grid.
func TestGenerate_HostileTileRestarts(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile, uniform("AAA")})
	require.Equal(t, 2, e.Catalog().Len())

	total := 0
	for seed := int64(1); seed <= 30; seed++ {
		var contradictions, restarts int
		res, err := e.Generate(3, 3,
			collapse.WithSeed(seed),
			collapse.WithMaxAttempts(64),
			collapse.WithOnContradiction(func(ev collapse.Event) {
				assert.Equal(t, -1, ev.Tile)
				contradictions++
			}),
			collapse.WithOnRestart(func(attempt int) {
				restarts++
				assert.Equal(t, restarts+1, attempt)
			}),
		)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, collapse.Verify(res, e.Table()))
		for _, row := range res.Indices() {
			for _, tile := range row {
				assert.Equal(t, 1, tile)
			}
		}
		assert.Equal(t, contradictions, restarts)
		assert.Equal(t, contradictions+1, res.Attempts)
		total += contradictions
	}
	assert.Positive(t, total, "no seed hit the hostile tile")
}

func TestGenerate_FailsAfterMaxAttempts(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile})
	var contradictions int
	var restarts []int
	res, err := e.Generate(2, 1,
		collapse.WithMaxAttempts(3),
		collapse.WithOnContradiction(func(collapse.Event) { contradictions++ }),
		collapse.WithOnRestart(func(a int) { restarts = append(restarts, a) }),
	)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, collapse.ErrGenerationFailed)
	assert.ErrorIs(t, err, collapse.ErrContradiction)
	assert.Equal(t, 3, contradictions)
	assert.Equal(t, []int{2, 3}, restarts)
}

func TestGenerate_PinForcesContradiction(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile, uniform("AAA")})
	var collapses, contradictions int
	_, err := e.Generate(3, 3,
		collapse.WithPin(1, 1, 0),
		collapse.WithMaxAttempts(4),
		collapse.WithOnCollapse(func(collapse.Event) error { collapses++; return nil }),
		collapse.WithOnContradiction(func(ev collapse.Event) {
			contradictions++
			// the first neighbor of the center to empty is the one above it
			assert.Equal(t, [2]int{1, 0}, [2]int{ev.Col, ev.Row})
		}),
	)
	assert.ErrorIs(t, err, collapse.ErrGenerationFailed)
	assert.Zero(t, collapses)
	assert.Equal(t, 4, contradictions)
}

func TestGenerate_PinRespected(t *testing.T) {
	e := newEngine(t, tileset.Demo())
	res, err := e.Generate(5, 5, collapse.WithPin(2, 2, 3), collapse.WithSeed(7), collapse.WithMaxAttempts(50))
	require.NoError(t, err)
	assert.Equal(t, 3, res.At(2, 2).Tile)
	assert.NoError(t, collapse.Verify(res, e.Table()))
}

func TestGenerate_ThemesConsistent(t *testing.T) {
	for _, name := range tileset.ThemeNames() {
		base, err := tileset.Theme(name)
		require.NoError(t, err)
		e := newEngine(t, base)
		for seed := int64(1); seed <= 5; seed++ {
			for _, order := range []grid.ScanOrder{grid.RowMajor, grid.Hilbert} {
				res, err := e.Generate(8, 6,
					collapse.WithSeed(seed),
					collapse.WithOrder(order),
					collapse.WithTieBreak(collapse.TieRandom),
					collapse.WithMaxAttempts(50),
				)
				require.NoError(t, err, "%s seed %d", name, seed)
				assert.NoError(t, collapse.Verify(res, e.Table()))
				for row := 0; row < res.Height; row++ {
					for col := 0; col < res.Width; col++ {
						p := res.At(col, row)
						tile := e.Catalog().Tile(p.Tile)
						assert.Equal(t, tile.Source, p.Source)
						assert.Equal(t, tile.Rotation, p.Rotation)
					}
				}
			}
		}
	}
}

func TestGenerate_Weights(t *testing.T) {
	e := newEngine(t, tileset.Demo())
	// the blank tile fits next to itself, so an overwhelming weight keeps it everywhere
	w := []float64{1e9, 1e-9, 1e-9, 1e-9, 1e-9}
	res, err := e.Generate(5, 5, collapse.WithWeights(w), collapse.WithSeed(3))
	require.NoError(t, err)
	for _, row := range res.Indices() {
		for _, tile := range row {
			assert.Equal(t, 0, tile)
		}
	}
}

//----------------------------------------------------------------------------//
// Determinism
//----------------------------------------------------------------------------//

func TestGenerate_Deterministic(t *testing.T) {
	e := newEngine(t, tileset.Circuit())
	a, err := e.Generate(10, 10, collapse.WithSeed(42), collapse.WithMaxAttempts(50))
	require.NoError(t, err)
	b, err := e.Generate(10, 10, collapse.WithSeed(42), collapse.WithMaxAttempts(50))
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed, different grids (-a +b):\n%s", diff)
	}

	// seed 0 is the documented default seed
	z, err := e.Generate(4, 4)
	require.NoError(t, err)
	one, err := e.Generate(4, 4, collapse.WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, one.Indices(), z.Indices())
}

// TestResult_SeedReplays: Result.Seed reproduces the grid with a bare Run.
func TestResult_SeedReplays(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile, uniform("AAA")})
	for seed := int64(1); seed <= 10; seed++ {
		res, err := e.Generate(3, 3, collapse.WithSeed(seed), collapse.WithMaxAttempts(64))
		require.NoError(t, err)

		r, err := e.NewRun(3, 3, collapse.WithSeed(res.Seed))
		require.NoError(t, err)
		for r.State() == collapse.Running {
			r.Step()
		}
		require.Equal(t, collapse.Done, r.State())
		replay, err := r.Result()
		require.NoError(t, err)
		assert.Equal(t, res.Indices(), replay.Indices())
	}
}

//----------------------------------------------------------------------------//
// Run: step-wise behavior
//----------------------------------------------------------------------------//

// TestRun_DomainsOnlyShrink snapshots every domain before each step and
// checks the new domain is a subset of the old one.
func TestRun_DomainsOnlyShrink(t *testing.T) {
	e := newEngine(t, tileset.Circuit())
	r, err := e.NewRun(7, 7, collapse.WithSeed(11), collapse.WithTieBreak(collapse.TieRandom))
	require.NoError(t, err)
	g := r.Grid()

	for r.State() == collapse.Running {
		before := make([]int, g.Len())
		snaps := make([]*bitset.BitSet, g.Len())
		for i := 0; i < g.Len(); i++ {
			before[i] = g.At(i).Entropy()
			snaps[i] = g.At(i).Domain.Clone()
		}
		r.Step()
		for i := 0; i < g.Len(); i++ {
			assert.True(t, snaps[i].IsSuperSet(g.At(i).Domain), "cell %d grew", i)
			assert.LessOrEqual(t, g.At(i).Entropy(), before[i])
		}
	}
	assert.Equal(t, r.State() == collapse.Done, g.IsFullyCollapsed())
	assert.Equal(t, r.State() == collapse.Contradiction, g.HasContradiction())
}

func TestRun_TieFirstFollowsScanOrder(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{uniform("AAA")})
	for _, order := range []grid.ScanOrder{grid.RowMajor, grid.Hilbert} {
		r, err := e.NewRun(3, 2, collapse.WithOrder(order))
		require.NoError(t, err)
		var got []int
		for r.State() == collapse.Running {
			ev, _ := r.Step()
			if ev.Tile >= 0 {
				got = append(got, r.Grid().Index(ev.Col, ev.Row))
			}
		}
		assert.Equal(t, r.Grid().Order(order), got, "order %s", order)
		assert.Equal(t, 6, r.Steps())
	}
}

func TestRun_ResultAndPinErrors(t *testing.T) {
	e := newEngine(t, tileset.Demo())
	r, err := e.NewRun(2, 2)
	require.NoError(t, err)

	_, err = r.Result()
	assert.ErrorIs(t, err, collapse.ErrNotDone)

	_, err = r.Pin(2, 0, 0)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	_, err = r.Pin(0, 0, 5)
	assert.ErrorIs(t, err, collapse.ErrOptionViolation)

	st, err := r.Pin(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, collapse.Running, st)
	c, err := r.Grid().Cell(0, 0)
	require.NoError(t, err)
	assert.True(t, c.Collapsed)

	for r.State() == collapse.Running {
		r.Step()
	}
	require.Equal(t, collapse.Done, r.State())
	_, err = r.Pin(1, 1, 0)
	assert.ErrorIs(t, err, collapse.ErrFinished)

	ev, st := r.Step()
	assert.Equal(t, collapse.Done, st)
	assert.Equal(t, -1, ev.Tile)
}

func TestRun_PinUnavailableTile(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile, uniform("AAA")})
	r, err := e.NewRun(2, 1)
	require.NoError(t, err)
	_, err = r.Pin(0, 0, 1)
	require.NoError(t, err)
	// (1,0) is now {AAA}; the hostile tile is gone
	st, err := r.Pin(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, collapse.Contradiction, st)
	ev, ok := r.Contradiction()
	require.True(t, ok)
	assert.Equal(t, [2]int{1, 0}, [2]int{ev.Col, ev.Row})
}

//----------------------------------------------------------------------------//
// Options, cancellation, hooks
//----------------------------------------------------------------------------//

func TestGenerate_OptionViolations(t *testing.T) {
	e := newEngine(t, tileset.Demo())
	cases := []struct {
		name string
		opts []collapse.Option
	}{
		{"ZeroAttempts", []collapse.Option{collapse.WithMaxAttempts(0)}},
		{"NegativeWeight", []collapse.Option{collapse.WithWeights([]float64{1, 1, -1, 1, 1})}},
		{"ZeroWeight", []collapse.Option{collapse.WithWeights([]float64{1, 0, 1, 1, 1})}},
		{"ShortWeights", []collapse.Option{collapse.WithWeights([]float64{1, 1})}},
		{"PinOutside", []collapse.Option{collapse.WithPin(4, 0, 0)}},
		{"PinTile", []collapse.Option{collapse.WithPin(0, 0, 9)}},
		{"TieBreak", []collapse.Option{collapse.WithTieBreak(collapse.TieBreak(7))}},
		{"Order", []collapse.Option{collapse.WithOrder(grid.ScanOrder(9))}},
		{"Workers", []collapse.Option{collapse.WithWorkers(0)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Generate(4, 4, tc.opts...)
			assert.ErrorIs(t, err, collapse.ErrOptionViolation)
		})
	}

	_, err := e.Generate(0, 4)
	assert.ErrorIs(t, err, grid.ErrEmptyGrid)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	e := newEngine(t, tileset.Demo())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Generate(4, 4, collapse.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	// cancelling mid-run stops before the next step
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	var steps int
	res, err := e.Generate(4, 4,
		collapse.WithContext(ctx),
		collapse.WithOnCollapse(func(ev collapse.Event) error {
			steps++
			if ev.Step == 3 {
				cancel()
			}
			return nil
		}),
	)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, steps)
}

func TestGenerate_HookErrorAborts(t *testing.T) {
	e := newEngine(t, tileset.Demo())
	errStop := errors.New("stop")
	res, err := e.Generate(4, 4, collapse.WithOnCollapse(func(ev collapse.Event) error {
		if ev.Step == 2 {
			return errStop
		}
		return nil
	}))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, errStop)
}

//----------------------------------------------------------------------------//
// GenerateMany
//----------------------------------------------------------------------------//

func TestGenerateMany(t *testing.T) {
	e := newEngine(t, tileset.Circuit())
	var events atomic.Int64
	results, err := e.GenerateMany(6, 6, 6,
		collapse.WithSeed(5),
		collapse.WithWorkers(3),
		collapse.WithMaxAttempts(50),
		collapse.WithOnCollapse(func(collapse.Event) error {
			events.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.GreaterOrEqual(t, events.Load(), int64(6*36))

	for i, res := range results {
		require.NoError(t, collapse.Verify(res, e.Table()))
		single, err := e.Generate(6, 6, collapse.WithSeed(collapse.BatchSeed(5, i)), collapse.WithMaxAttempts(50))
		require.NoError(t, err)
		if diff := cmp.Diff(single, res); diff != "" {
			t.Errorf("grid %d differs from its single-grid replay (-single +batch):\n%s", i, diff)
		}
	}

	empty, err := e.GenerateMany(0, 3, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = e.GenerateMany(-1, 3, 3)
	assert.ErrorIs(t, err, collapse.ErrOptionViolation)
}

func TestGenerateMany_FailureCancels(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile})
	_, err := e.GenerateMany(4, 2, 2, collapse.WithMaxAttempts(2))
	assert.ErrorIs(t, err, collapse.ErrGenerationFailed)
}

//----------------------------------------------------------------------------//
// Verify
//----------------------------------------------------------------------------//

func TestVerify_DetectsIllegalPair(t *testing.T) {
	e := newEngine(t, []tileset.BaseTile{hostile, uniform("AAA")})
	bad := &collapse.Result{
		Width: 2, Height: 1,
		Cells: [][]collapse.Placement{{{Tile: 1}, {Tile: 0}}},
	}
	assert.ErrorIs(t, collapse.Verify(bad, e.Table()), collapse.ErrInconsistent)

	good := &collapse.Result{
		Width: 1, Height: 2,
		Cells: [][]collapse.Placement{{{Tile: 1}}, {{Tile: 1}}},
	}
	assert.NoError(t, collapse.Verify(good, e.Table()))

	outside := &collapse.Result{Width: 1, Height: 1, Cells: [][]collapse.Placement{{{Tile: 9}}}}
	assert.ErrorIs(t, collapse.Verify(outside, e.Table()), collapse.ErrInconsistent)

	ragged := &collapse.Result{Width: 2, Height: 1, Cells: [][]collapse.Placement{{{Tile: 1}}}}
	assert.ErrorIs(t, collapse.Verify(ragged, e.Table()), collapse.ErrInconsistent)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "running", collapse.Running.String())
	assert.Equal(t, "done", collapse.Done.String())
	assert.Equal(t, "contradiction", collapse.Contradiction.String())
	assert.Equal(t, "random", collapse.TieRandom.String())
}
