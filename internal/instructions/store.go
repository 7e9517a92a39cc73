// Package instructions persists the permanent instruction list applied to
// every business summary.
package instructions

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mrjuarez2contactos/mjtranscripciones-pro/internal/logger"

	_ "modernc.org/sqlite"
)

// Store holds the instruction list in memory and mirrors every mutation to
// SQLite. The whole list is rewritten on each save; order is the position
// column.
type Store struct {
	db  *sql.DB
	log logger.Logger

	mu    sync.Mutex
	items []string
}

// Open opens (or creates) the instruction database at path.
func Open(path string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS instructions (
			position INTEGER PRIMARY KEY,
			text TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted list into memory. Called once at startup. Missing
// or unreadable data yields an empty list; the problem is logged, never
// returned, so a broken database cannot keep the app from starting.
func (s *Store) Load() []string {
	rows, err := s.db.Query(`SELECT text FROM instructions ORDER BY position ASC`)
	if err != nil {
		s.log.Warn(context.Background(), "load instructions: %v", err)
		return []string{}
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			s.log.Warn(context.Background(), "scan instruction: %v", err)
			return []string{}
		}
		items = append(items, text)
	}
	if err := rows.Err(); err != nil {
		s.log.Warn(context.Background(), "read instructions: %v", err)
		return []string{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return s.Current()
}

// Current returns a copy of the in-memory list.
func (s *Store) Current() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Save replaces the persisted list with list, in one transaction, and updates
// the in-memory copy on success.
func (s *Store) Save(list []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM instructions`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear instructions: %w", err)
	}
	for i, text := range list {
		if _, err := tx.Exec(`INSERT INTO instructions (position, text) VALUES (?, ?)`, i, text); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert instruction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	s.mu.Lock()
	s.items = make([]string, len(list))
	copy(s.items, list)
	s.mu.Unlock()

	return nil
}

// Add appends text to the list and persists.
func (s *Store) Add(text string) error {
	return s.Save(append(s.Current(), text))
}

// Remove deletes the instruction at index and persists.
func (s *Store) Remove(index int) error {
	list := s.Current()
	if index < 0 || index >= len(list) {
		return fmt.Errorf("instruction index %d out of range", index)
	}
	return s.Save(append(list[:index], list[index+1:]...))
}

// ParseText splits a text blob into instructions, one per line, dropping
// blank lines. Import format for instruction files.
func ParseText(blob string) []string {
	var items []string
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

// JoinText renders the list in the line-based interchange format.
func JoinText(list []string) string {
	return strings.Join(list, "\n")
}
