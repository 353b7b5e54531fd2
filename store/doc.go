// Package store persists generated grids in a single SQLite file.
//
// Layout:
//
//	metadata(name TEXT PRIMARY KEY, value TEXT)
//	grids(id INTEGER PRIMARY KEY, seed, width, height, attempts, cells BLOB)
//
// cells holds width×height placements in row-major order, each encoded as
// three little-endian uint16 values: catalog index, source base tile and
// rotation. A blob whose length disagrees with width×height is reported
// as ErrCorrupt.
//
// Note: the caller must register the sqlite3 driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package store
