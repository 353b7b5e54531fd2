package store

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/katalvlaran/wfc/collapse"
)

// Writer appends grids to a SQLite file.
type Writer struct {
	db     *sql.DB
	stmt   *sql.Stmt
	logger *slog.Logger
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata stores name/value pairs, replacing existing names.
func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// NewWriter opens (or creates) the file at filePath and prepares it for
// writing grids. Existing grids are kept.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (name TEXT PRIMARY KEY, value TEXT);
		CREATE TABLE IF NOT EXISTS grids (
			id INTEGER PRIMARY KEY,
			seed INTEGER,
			width INTEGER,
			height INTEGER,
			attempts INTEGER,
			cells BLOB
		);
	`)
	if err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		_, err = db.Exec("INSERT OR REPLACE INTO metadata (name, value) VALUES (?, ?)", k, v)
		if err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO grids (seed, width, height, attempts, cells) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	config.Logger.Debug("store: opened for writing", "path", filePath)
	return &Writer{db, stmt, config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

// WriteResult stores res and returns its id.
func (w *Writer) WriteResult(res *collapse.Result) (int64, error) {
	blob, err := encodeCells(res)
	if err != nil {
		return 0, err
	}
	r, err := w.stmt.Exec(res.Seed, res.Width, res.Height, res.Attempts, blob)
	if err != nil {
		return 0, err
	}
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}
	w.logger.Debug("store: grid written", "id", id, "width", res.Width, "height", res.Height, "seed", res.Seed)
	return id, nil
}
