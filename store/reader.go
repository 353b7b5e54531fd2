package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/katalvlaran/wfc/collapse"
)

// Reader reads grids and metadata from a SQLite file.
type Reader struct {
	db   *sql.DB
	stmt *sql.Stmt
}

// NewReader opens the file at filePath read-only.
//
// The returned Reader must be closed after use to release database resources.
func NewReader(filePath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", filePath))
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare("SELECT seed, width, height, attempts, cells FROM grids WHERE id = ?")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Reader{db: db, stmt: stmt}, nil
}

func (r *Reader) Close() error {
	return errors.Join(r.stmt.Close(), r.db.Close())
}

func (r *Reader) Metadata() (map[string]string, error) {
	metadata := make(map[string]string)

	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metadata, nil
}

// ReadResult returns the grid stored under id, or ErrNotFound.
func (r *Reader) ReadResult(id int64) (*collapse.Result, error) {
	var (
		res  collapse.Result
		blob []byte
	)
	err := r.stmt.QueryRow(id).Scan(&res.Seed, &res.Width, &res.Height, &res.Attempts, &blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	if res.Cells, err = decodeCells(blob, res.Width, res.Height); err != nil {
		return nil, fmt.Errorf("grid %d: %w", id, err)
	}
	return &res, nil
}

// VisitResults calls visitor for every stored grid in id order.
// A visitor error stops the walk and is returned.
func (r *Reader) VisitResults(visitor func(int64, *collapse.Result) error) error {
	rows, err := r.db.Query("SELECT id, seed, width, height, attempts, cells FROM grids ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			res  collapse.Result
			blob []byte
		)
		if err := rows.Scan(&id, &res.Seed, &res.Width, &res.Height, &res.Attempts, &blob); err != nil {
			return err
		}
		if res.Cells, err = decodeCells(blob, res.Width, res.Height); err != nil {
			return fmt.Errorf("grid %d: %w", id, err)
		}
		if err := visitor(id, &res); err != nil {
			return err
		}
	}

	return rows.Err()
}
