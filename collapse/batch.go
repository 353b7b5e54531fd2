package collapse

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GenerateMany produces count independent width×height grids using up
// to Workers goroutines. Grid i is generated exactly as Generate would
// with seed BatchSeed(Seed, i), so results do not depend on scheduling.
// The engine's catalog and table are shared read-only; each grid owns
// its Run and RNG. The first failure cancels the remaining grids.
//
// Hooks are called concurrently; Event.Grid tells grids apart.
// Returns ErrOptionViolation for count < 0.
func (e *Engine) GenerateMany(count, width, height int, opts ...Option) ([]*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative (%d)", ErrOptionViolation, count)
	}
	if err := o.validate(e.catalog.Len(), width, height); err != nil {
		return nil, err
	}

	base := o.Seed
	results := make([]*Result, count)

	eg, ctx := errgroup.WithContext(o.Ctx)
	eg.SetLimit(o.Workers)
	for i := range count {
		eg.Go(func() error {
			gi := o
			gi.Ctx = ctx
			gi.Seed = BatchSeed(base, i)
			res, err := e.generate(width, height, gi, i)
			if err != nil {
				return fmt.Errorf("collapse: grid %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BatchSeed reports the seed GenerateMany uses for grid i, so a single
// grid of a batch can be regenerated with Generate(WithSeed(...)).
func BatchSeed(seed int64, i int) int64 {
	return deriveSeed(normalizeSeed(seed), batchStream+uint64(i))
}
