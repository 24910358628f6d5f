// Package vocabstore persists user-added vocabulary entries in SQLite. The
// table is append-only: rows are inserted and read, never changed.
package vocabstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/eotext/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS vocabulary (
	word     TEXT PRIMARY KEY,
	added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TRIGGER IF NOT EXISTS vocabulary_no_update
BEFORE UPDATE ON vocabulary
BEGIN
	SELECT RAISE(ABORT, 'vocabulary is append-only');
END;

CREATE TRIGGER IF NOT EXISTS vocabulary_no_delete
BEFORE DELETE ON vocabulary
BEGIN
	SELECT RAISE(ABORT, 'vocabulary is append-only');
END;
`

// Store is the interface for the user vocabulary. Consumers should depend on
// it rather than on *DB.
type Store interface {
	Append(ctx context.Context, word string, addedAt time.Time) error
	Get(ctx context.Context, word string) (*EntryRow, error)
	List(ctx context.Context) ([]EntryRow, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// EntryRow represents a row in the vocabulary table.
type EntryRow struct {
	Word    string
	AddedAt time.Time
}

// DB wraps a sql.DB with vocabulary operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("vocabstore: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("vocabstore: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("vocabstore: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Append inserts a normalized word. It returns apperr.ErrAlreadyExists when
// the word is already stored.
func (db *DB) Append(ctx context.Context, word string, addedAt time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO vocabulary (word, added_at) VALUES (?, ?)`,
		word, addedAt.UTC())
	if err != nil {
		return fmt.Errorf("vocabstore: append %q: %w", word, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("vocabstore: append %q: %w", word, err)
	}
	if n == 0 {
		return fmt.Errorf("vocabstore: %q: %w", word, apperr.ErrAlreadyExists)
	}
	return nil
}

// Get returns a single entry or apperr.ErrNotFound.
func (db *DB) Get(ctx context.Context, word string) (*EntryRow, error) {
	var row EntryRow
	err := db.conn.QueryRowContext(ctx,
		`SELECT word, added_at FROM vocabulary WHERE word = ?`, word,
	).Scan(&row.Word, &row.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vocabstore: %q: %w", word, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("vocabstore: get %q: %w", word, err)
	}
	return &row, nil
}

// List returns all entries ordered by word.
func (db *DB) List(ctx context.Context) ([]EntryRow, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT word, added_at FROM vocabulary ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("vocabstore: list: %w", err)
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		var r EntryRow
		if err := rows.Scan(&r.Word, &r.AddedAt); err != nil {
			return nil, fmt.Errorf("vocabstore: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored entries.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocabulary`).Scan(&n); err != nil {
		return 0, fmt.Errorf("vocabstore: count: %w", err)
	}
	return n, nil
}
