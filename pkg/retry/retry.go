// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package retry drives re-delivery of cached ticket records through
// the tracker client and reconciles cache state with each outcome.
package retry

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/terry/internal/logging"
	"github.com/mesh-intelligence/terry/pkg/cache"
	"github.com/mesh-intelligence/terry/pkg/tracker"
)

// State classifies the outcome of one retry attempt.
type State string

const (
	StateDelivered State = "delivered"
	StateRetryable State = "retryable"
	StateFatal     State = "fatal"
	StateNotFound  State = "not_found"
	// StateError marks a storage failure while applying an outcome.
	// The tracker attempt may or may not have happened; the entry is
	// still in the cache.
	StateError State = "error"
)

// Outcome is the per-entry result of a retry attempt.
type Outcome struct {
	EntryID  string `json:"entry_id"`
	Title    string `json:"title,omitempty"`
	State    State  `json:"state"`
	Attempts int    `json:"attempts,omitempty"`
	RemoteID string `json:"remote_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Err      string `json:"error,omitempty"`
}

// Coordinator retries cached entries. It owns no state of its own;
// every mutation goes through the store so concurrent invocations stay
// consistent.
type Coordinator struct {
	store  cache.Store
	client tracker.Client
}

// New returns a coordinator over the given store and tracker client.
func New(store cache.Store, client tracker.Client) *Coordinator {
	return &Coordinator{store: store, client: client}
}

// RetryOne loads the entry and performs exactly one delivery attempt.
// On delivery the entry is removed; on a retryable failure it stays
// pending with the attempt count and last error updated; on a fatal
// failure it is preserved the same way but reported as needing manual
// intervention. The returned error is non-nil only for storage
// failures, which are never swallowed.
func (c *Coordinator) RetryOne(ctx context.Context, id string) (Outcome, error) {
	entry, err := c.store.Get(id)
	if errors.Is(err, cache.ErrNotFound) {
		return Outcome{EntryID: id, State: StateNotFound}, nil
	}
	if err != nil {
		return Outcome{EntryID: id, State: StateError, Err: err.Error()}, err
	}

	out := Outcome{EntryID: id, Title: entry.Record.Title}
	attempts := entry.Attempts + 1

	delivery, err := c.client.Submit(ctx, entry.Record, entry.ID)
	if err == nil {
		// Removal must be durable before the entry counts as done; a
		// crash before the unlink simply leaves it pending for the
		// next run.
		if rmErr := c.store.Remove(id); rmErr != nil {
			logf("retryOne %s: delivered (#%s) but removal failed: %v", id, delivery.RemoteID, rmErr)
			out.State = StateError
			out.Err = rmErr.Error()
			return out, rmErr
		}
		out.State = StateDelivered
		out.Attempts = attempts
		out.RemoteID = delivery.RemoteID
		out.URL = delivery.URL
		logf("retryOne %s: delivered as #%s", id, delivery.RemoteID)
		return out, nil
	}

	var fatal *tracker.FatalError
	if errors.As(err, &fatal) {
		out.State = StateFatal
	} else {
		out.State = StateRetryable
	}
	out.Attempts = attempts
	out.Err = err.Error()

	if updErr := c.store.Update(id, attempts, err.Error(), cache.StatusPending); updErr != nil {
		logf("retryOne %s: recording attempt failed: %v", id, updErr)
		out.State = StateError
		out.Err = updErr.Error()
		return out, updErr
	}
	logf("retryOne %s: %s (attempt %d): %v", id, out.State, attempts, err)
	return out, nil
}

// RetryAll retries every entry in a List snapshot, oldest first.
// Entries cached while the batch runs are not included. One entry's
// failure never aborts the batch; each entry gets its own outcome.
func (c *Coordinator) RetryAll(ctx context.Context) ([]Outcome, error) {
	entries, err := c.store.List()
	if err != nil {
		return nil, err
	}
	logf("retryAll: %d pending entr%s", len(entries), plural(len(entries), "y", "ies"))

	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		out, err := c.RetryOne(ctx, entry.ID)
		if err != nil {
			// Storage failure on this entry; already reflected in the
			// outcome. Remaining entries are independent.
			logf("retryAll: entry %s: %v", entry.ID, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func logf(format string, args ...any) {
	logging.Logf("retry: "+format, args...)
}
