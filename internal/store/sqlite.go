package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/cvcoach/internal/model"
)

// Ensure SQLiteStore implements model.HistoryStore.
var _ model.HistoryStore = (*SQLiteStore)(nil)

// SQLiteStore journals finished flow attempts in a SQLite database.
// It holds outcomes only; CV fields and job listings are never written.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// attempts table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS attempts (
		id        TEXT PRIMARY KEY,
		flow      TEXT NOT NULL,
		file_name TEXT NOT NULL DEFAULT '',
		file_size INTEGER NOT NULL DEFAULT 0,
		ok        INTEGER NOT NULL,
		message   TEXT NOT NULL DEFAULT '',
		results   INTEGER NOT NULL DEFAULT 0,
		at        DATETIME NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating attempts table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record stores one attempt. Recording the same ID twice is a no-op.
func (s *SQLiteStore) Record(a model.Attempt) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO attempts (id, flow, file_name, file_size, ok, message, results, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Flow, a.FileName, a.FileSize, a.OK, a.Message, a.Results, a.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording %s attempt %s: %w", a.Flow, a.ID, err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *SQLiteStore) Recent(limit int) ([]model.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT id, flow, file_name, file_size, ok, message, results, at
		 FROM attempts ORDER BY at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	defer rows.Close()

	var out []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.Flow, &a.FileName, &a.FileSize, &a.OK, &a.Message, &a.Results, &a.At); err != nil {
			return nil, fmt.Errorf("scanning attempt: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	return out, nil
}

// Cleanup deletes attempts older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).UTC()
	_, err := s.db.Exec("DELETE FROM attempts WHERE at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up attempts older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
