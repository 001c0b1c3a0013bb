// Package cache is lacc's compile cache: a small SQLite-backed
// memoization layer keyed by a source-text hash and the selected
// compilation mode. lacc is a teaching tool that recompiles the same
// handful of student files over and over, so a clean rerun of an
// unchanged file can return a previously produced report or C file
// without re-running the pipeline.
//
// Built on database/sql + modernc.org/sqlite, a pure-Go (cgo-free)
// driver pairing for embedded SQL access.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding past compilation runs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS compilations (
	id         TEXT PRIMARY KEY,
	source_hash TEXT NOT NULL,
	mode        TEXT NOT NULL,
	output      BLOB NOT NULL,
	created_at  TEXT NOT NULL,
	UNIQUE(source_hash, mode)
);
`

// Open creates or opens the SQLite database at path, creating the
// compilations table if it does not already exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key hashes source with SHA-256, the lookup key for a compilation run
// alongside its mode.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Lookup returns a previously cached output for (sourceHash, mode), if
// any.
func (s *Store) Lookup(sourceHash, mode string) (output []byte, ok bool, err error) {
	row := s.db.QueryRow(
		`SELECT output FROM compilations WHERE source_hash = ? AND mode = ?`,
		sourceHash, mode,
	)
	if err := row.Scan(&output); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return output, true, nil
}

// Store records output under (sourceHash, mode), minting a fresh row
// id, and returns that id so the caller can report it to the student
// alongside the run summary.
func (s *Store) Store(sourceHash, mode string, output []byte) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO compilations (id, source_hash, mode, output, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, sourceHash, mode, output, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("cache: store: %w", err)
	}
	return id, nil
}
