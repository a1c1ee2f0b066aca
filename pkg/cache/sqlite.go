// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// SQLiteStore is an embedded-database Store for operators who prefer a
// single cache file over a directory of entries. Same contract as
// FileStore; per-statement atomicity comes from sqlite itself.
type SQLiteStore struct {
	db   *sql.DB
	path string

	// Now supplies entry cache times. Defaults to time.Now.
	Now func() time.Time
}

// NewSQLiteStore opens (creating if needed) the database at path and
// runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
  id TEXT PRIMARY KEY,
  record TEXT NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0,
  last_error TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  cached_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status, cached_at);
`
	if _, err := s.db.Exec(schema); err != nil {
		return &StorageError{Op: "migrate", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Put persists a new pending entry for the record.
func (s *SQLiteStore) Put(rec ticket.Record) (Entry, error) {
	entry := Entry{
		ID:       EntryID(rec),
		Record:   rec,
		Attempts: 0,
		Status:   StatusPending,
		CachedAt: s.now(),
	}
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return Entry{}, &StorageError{Op: "marshal", Path: s.path, Err: err}
	}
	_, err = s.db.Exec(`
INSERT INTO entries (id, record, attempts, last_error, status, cached_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, string(recJSON), entry.Attempts, entry.LastError, string(entry.Status), entry.CachedAt)
	if err != nil {
		return Entry{}, &StorageError{Op: "insert", Path: s.path, Err: err}
	}
	return entry, nil
}

// List returns all pending entries, oldest first (ties by id).
func (s *SQLiteStore) List() ([]Entry, error) {
	rows, err := s.db.Query(`
SELECT id, record, attempts, last_error, status, cached_at
FROM entries WHERE status = ? ORDER BY cached_at, id`, string(StatusPending))
	if err != nil {
		return nil, &StorageError{Op: "select", Path: s.path, Err: err}
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, &StorageError{Op: "scan", Path: s.path, Err: err}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "select", Path: s.path, Err: err}
	}
	return entries, nil
}

// Get returns the entry for id, or ErrNotFound.
func (s *SQLiteStore) Get(id string) (Entry, error) {
	row := s.db.QueryRow(`
SELECT id, record, attempts, last_error, status, cached_at
FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, &StorageError{Op: "select", Path: s.path, Err: err}
	}
	return entry, nil
}

// Update atomically replaces the entry's mutable fields.
func (s *SQLiteStore) Update(id string, attempts int, lastError string, status Status) error {
	res, err := s.db.Exec(`
UPDATE entries SET attempts = ?, last_error = ?, status = ? WHERE id = ?`,
		attempts, lastError, string(status), id)
	if err != nil {
		return &StorageError{Op: "update", Path: s.path, Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove permanently deletes an entry.
func (s *SQLiteStore) Remove(id string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return &StorageError{Op: "delete", Path: s.path, Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanEntry reads one entries row via the given scan function.
func scanEntry(scan func(dest ...any) error) (Entry, error) {
	var (
		entry   Entry
		recJSON string
		status  string
	)
	if err := scan(&entry.ID, &recJSON, &entry.Attempts, &entry.LastError, &status, &entry.CachedAt); err != nil {
		return Entry{}, err
	}
	var rec ticket.Record
	if err := json.Unmarshal([]byte(recJSON), &rec); err != nil {
		return Entry{}, err
	}
	entry.Record = rec
	entry.Status = Status(status)
	return entry, nil
}
