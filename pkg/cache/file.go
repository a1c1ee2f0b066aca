// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/terry/internal/logging"
	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// DefaultDir returns the default cache directory under the system temp
// location.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "terry-cache")
}

// FileStore keeps one self-contained JSON file per entry, named
// "<id>.json". Every write goes through a temp file in the same
// directory followed by a rename, so a crash mid-write never corrupts
// an entry or makes a duplicate visible; removal is a single unlink.
// This makes each operation atomic with respect to concurrent terry
// invocations.
type FileStore struct {
	dir string

	// Now supplies entry cache times. Defaults to time.Now.
	Now func() time.Time
}

// NewFileStore creates the cache directory if needed and returns a
// store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Put persists a new pending entry for the record.
func (s *FileStore) Put(rec ticket.Record) (Entry, error) {
	entry := Entry{
		ID:       EntryID(rec),
		Record:   rec,
		Attempts: 0,
		Status:   StatusPending,
		CachedAt: s.now(),
	}
	if err := s.write(entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// write serializes the entry to a temp file and renames it into place.
func (s *FileStore) write(entry Entry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return &StorageError{Op: "marshal", Path: s.path(entry.ID), Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, ".entry-*.tmp")
	if err != nil {
		return &StorageError{Op: "create temp", Path: s.dir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, s.path(entry.ID)); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "rename", Path: s.path(entry.ID), Err: err}
	}
	return nil
}

// List returns all pending entries, creation order (oldest first, ties
// by id). Unreadable entry files are logged and skipped rather than
// failing the listing.
func (s *FileStore) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &StorageError{Op: "read dir", Path: s.dir, Err: err}
	}

	var entries []Entry
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		entry, err := s.read(filepath.Join(s.dir, name))
		if err != nil {
			logf("list: skipping %s: %v", name, err)
			continue
		}
		if entry.Status == StatusPending {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CachedAt.Equal(entries[j].CachedAt) {
			return entries[i].CachedAt.Before(entries[j].CachedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// Get returns the entry for id, or ErrNotFound.
func (s *FileStore) Get(id string) (Entry, error) {
	entry, err := s.read(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (s *FileStore) read(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, err
	}
	if err != nil {
		return Entry{}, &StorageError{Op: "read", Path: path, Err: err}
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, &StorageError{Op: "parse", Path: path, Err: err}
	}
	return entry, nil
}

// Update atomically replaces the entry's mutable fields via the same
// temp-and-rename path as Put.
func (s *FileStore) Update(id string, attempts int, lastError string, status Status) error {
	entry, err := s.Get(id)
	if err != nil {
		return err
	}
	entry.Attempts = attempts
	entry.LastError = lastError
	entry.Status = status
	return s.write(entry)
}

// Remove permanently deletes the entry file.
func (s *FileStore) Remove(id string) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return &StorageError{Op: "remove", Path: s.path(id), Err: err}
	}
	return nil
}

// logf forwards to the shared logger with the package prefix.
func logf(format string, args ...any) {
	logging.Logf("cache: "+format, args...)
}
