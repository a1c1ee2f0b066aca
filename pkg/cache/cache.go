// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cache durably persists ticket records that could not be
// delivered, so a submission is never silently lost. Entries live in a
// Store until a retry confirms delivery.
package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// Status is the delivery state of a cached entry.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
)

// Entry is a ticket record plus delivery metadata. The store owns the
// persisted representation; callers receive snapshots.
type Entry struct {
	ID        string        `json:"id"`
	Record    ticket.Record `json:"record"`
	Attempts  int           `json:"attempts"`
	LastError string        `json:"last_error,omitempty"`
	Status    Status        `json:"status"`
	CachedAt  time.Time     `json:"cached_at"`
}

// ErrNotFound is returned when no entry exists for an id.
var ErrNotFound = errors.New("cache: entry not found")

// Store is the durable-cache boundary. Each operation is individually
// atomic so concurrent invocations never observe a half-written entry;
// no cross-entry transactions exist. Implementations must never leave
// an entry absent and undelivered.
type Store interface {
	// Put persists a new pending entry for the record and returns it.
	Put(rec ticket.Record) (Entry, error)
	// List returns all pending entries, oldest first (ties by id).
	List() ([]Entry, error)
	// Get returns the entry for id, or ErrNotFound.
	Get(id string) (Entry, error)
	// Update atomically replaces the entry's mutable fields.
	Update(id string, attempts int, lastError string, status Status) error
	// Remove permanently deletes an entry. Called only after a
	// confirmed delivery.
	Remove(id string) error
}

// StorageError is a durable-storage medium failure (disk full,
// permission denied, corrupt database). Always surfaced to the
// operator: losing a ticket record is the one unacceptable outcome.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
