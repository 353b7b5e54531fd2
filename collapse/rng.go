// Package collapse - RNG utilities shared by runs and batches.
//
// Goals:
//   - Determinism: same seed ⇒ identical grids across platforms.
//   - No time-based sources anywhere in the package.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every Run owns its own stream;
//     GenerateMany derives one seed per grid up front.
package collapse

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// batchStream offsets GenerateMany streams away from attempt streams.
const batchStream uint64 = 1 << 32

// normalizeSeed applies the seed==0 policy.
func normalizeSeed(seed int64) int64 {
	if seed == 0 {
		return defaultRNGSeed
	}
	return seed
}

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(normalizeSeed(seed)))
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer, so neighboring streams are uncorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return normalizeSeed(int64(x))
}

// attemptSeed returns the seed of a 1-based attempt: the base seed for
// the first attempt, a derived stream for every retry.
func attemptSeed(base int64, attempt int) int64 {
	base = normalizeSeed(base)
	if attempt <= 1 {
		return base
	}
	return deriveSeed(base, uint64(attempt))
}
