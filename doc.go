// Package wfc generates tile grids with the wave function collapse
// algorithm: every cell starts able to hold any tile, and the engine
// repeatedly fixes the most constrained cell, then prunes its
// neighbors until every cell holds exactly one tile whose borders agree
// with all four neighbors.
//
// What is in the box?
//
//	tileset/   — border signatures, rotation + dedup into a catalog, themes, YAML loader
//	adjacency/ — per-direction compatibility bitsets built once per catalog
//	grid/      — cells with bitset domains, neighbors, row-major and Hilbert scans
//	collapse/  — Engine, step-wise Run, propagation, restarts, batches, Verify
//	store/     — SQLite persistence of finished grids
//	live/      — websocket stream of collapse events
//	cmd/wfc    — generate, show, tiles and serve subcommands
//
// Quick example:
//
//	cat, _ := tileset.Build(tileset.Circuit())
//	eng, _ := collapse.NewEngine(cat)
//	res, err := eng.Generate(20, 10, collapse.WithSeed(7))
//
// A 2×2 patch of the demo theme, drawn with border runes:
//
//	ABAABA
//	A+BB+A
//	ABAABA
//	ABAABA
//	B+BB+A
//	AAAABA
//
// The same seed always yields the same grid; see collapse for the exact
// reproducibility contract.
//
//	go install github.com/katalvlaran/wfc/cmd/wfc@latest
package wfc
