// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tracker submits canonical ticket records to a remote issue
// tracker and classifies each attempt as delivered, retryable, or
// fatal. A Client performs exactly one network attempt per call; retry
// policy lives with the caller.
package tracker

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// Client is the tracker boundary. entryID carries the durable-cache
// entry id on retries so the request can be correlated with a cached
// record; it is empty on first submission.
type Client interface {
	Submit(ctx context.Context, rec ticket.Record, entryID string) (Delivery, error)
}

// Delivery is the tracker's confirmation of a created issue.
type Delivery struct {
	RemoteID string `json:"remote_id"`
	URL      string `json:"url,omitempty"`
}

// RetryableError is a transient tracker or network condition. The
// record should be cached and retried later.
type RetryableError struct {
	Reason string
	Status int // HTTP status, 0 for transport errors
}

func (e *RetryableError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("tracker returned %d: %s", e.Status, e.Reason)
	}
	return "tracker unreachable: " + e.Reason
}

// FatalError is a non-transient failure (bad credentials, malformed
// request). Blind retry can never succeed; the operator must act.
type FatalError struct {
	Reason string
	Status int
}

func (e *FatalError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("tracker rejected request (%d): %s", e.Status, e.Reason)
	}
	return "tracker rejected request: " + e.Reason
}
