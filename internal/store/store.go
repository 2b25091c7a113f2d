// Package store is the SQLite event journal: an append-only record of
// what happened during play, kept next to the save files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// FileName is the journal database name inside the data directory.
const FileName = "journal.db"

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them applied.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDir opens (creating if needed) the journal inside dataDir.
func OpenDir(dataDir string) (*Store, error) {
	p := Path(dataDir)
	if err := ensureDir(p); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return Open(p)
}

// Path returns the journal file path for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		// AUTOINCREMENT: a sequence is never handed out twice, even
		// after the newest rows are deleted.
		`CREATE TABLE IF NOT EXISTS events (
			sequence     INTEGER PRIMARY KEY AUTOINCREMENT,
			ts           INTEGER NOT NULL,
			kind         TEXT    NOT NULL,
			slot         INTEGER NOT NULL,
			session_id   TEXT    NOT NULL,
			challenge_id TEXT    NOT NULL DEFAULT '',
			detail       TEXT    NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS events_slot_kind ON events (slot, kind)`,
		`CREATE INDEX IF NOT EXISTS events_ts ON events (ts)`,
	}
	for _, q := range stmts {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
