// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists data frames into a local SQLite database, one table
// per frame, with column affinities taken from the inferred dtypes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/utilities/internal/table"
)

// Store wraps a SQLite database handle.
type Store struct {
	db   *sql.DB
	path string
}

// identPattern restricts table names to plain SQL identifiers.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open opens or creates the SQLite database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// affinity maps a frame dtype to a SQLite column type.
func affinity(d table.DType) string {
	switch d {
	case table.Int64, table.Bool:
		return "INTEGER"
	case table.Float64:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SaveFrame replaces table name with the contents of f. The drop, create
// and inserts run in one transaction, so a failed save leaves any previous
// table intact. It returns the number of rows written.
func (s *Store) SaveFrame(ctx context.Context, name string, f *table.Frame) (int, error) {
	if !identPattern.MatchString(name) {
		return 0, fmt.Errorf("invalid table name %q: use letters, digits and underscores", name)
	}
	if f.Width() == 0 {
		return 0, fmt.Errorf("frame has no columns")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quoteIdent(name)); err != nil {
		return 0, fmt.Errorf("dropping table %s: %w", name, err)
	}

	defs := make([]string, f.Width())
	cols := make([]string, f.Width())
	marks := make([]string, f.Width())
	for i, c := range f.Columns {
		cols[i] = quoteIdent(c.Name)
		defs[i] = cols[i] + " " + affinity(c.DType)
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("creating table %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for r := range f.Height() {
		if _, err := stmt.ExecContext(ctx, f.Row(r)...); err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", r+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return f.Height(), nil
}

// Count returns the number of rows in table name.
func (s *Store) Count(ctx context.Context, name string) (int, error) {
	if !identPattern.MatchString(name) {
		return 0, fmt.Errorf("invalid table name %q", name)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+quoteIdent(name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows in %s: %w", name, err)
	}
	return n, nil
}

// Columns returns the declared column names and types of table name.
func (s *Store) Columns(ctx context.Context, name string) ([][2]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, type FROM pragma_table_info(?)`, name)
	if err != nil {
		return nil, fmt.Errorf("reading schema of %s: %w", name, err)
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var col, typ string
		if err := rows.Scan(&col, &typ); err != nil {
			return nil, err
		}
		out = append(out, [2]string{col, typ})
	}
	return out, rows.Err()
}
