// Package history keeps a local record of cards the assistant has
// submitted. The record is a hint layered on top of the AnkiConnect
// duplicate query - it survives deck renames and works while Anki's own
// search is unavailable - and it is strictly best-effort: a missing or
// broken database never blocks a session.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store records submitted cards in a local SQLite database
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location under the
// user's XDG state directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ankiword", "history.db")
	}
	return filepath.Join(home, ".local", "state", "ankiword", "history.db")
}

// Open opens (creating if necessary) the history database at path
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL,
		deck TEXT NOT NULL,
		note_id INTEGER NOT NULL,
		added_at TIMESTAMP NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one submitted card
func (s *Store) Record(word, deck string, noteID int64) error {
	_, err := s.db.Exec(
		`INSERT INTO cards (word, deck, note_id, added_at) VALUES (?, ?, ?, ?)`,
		word, deck, noteID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record card: %w", err)
	}
	return nil
}

// LastAdded returns when the word was last submitted to the given deck,
// if ever
func (s *Store) LastAdded(word, deck string) (time.Time, bool, error) {
	var added time.Time
	err := s.db.QueryRow(
		`SELECT added_at FROM cards WHERE word = ? AND deck = ? ORDER BY added_at DESC LIMIT 1`,
		word, deck,
	).Scan(&added)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query history: %w", err)
	}
	return added, true, nil
}

// Count returns how many cards have been recorded in total
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
