// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/terry/internal/config"
	"github.com/mesh-intelligence/terry/pkg/ticket"
	"github.com/mesh-intelligence/terry/pkg/tracker"
)

// submitResult is the outcome of one first-submission attempt.
type submitResult struct {
	Delivered bool   `json:"delivered"`
	RemoteID  string `json:"remote_id,omitempty"`
	URL       string `json:"url,omitempty"`

	// Saved is set when a retryable failure parked the record in the
	// durable cache.
	Saved     bool   `json:"saved_for_retry,omitempty"`
	EntryID   string `json:"entry_id,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// submitRecord attempts one delivery of rec. A retryable failure is
// absorbed into the durable cache and reported as saved, not as a
// command failure. Fatal tracker failures and storage errors return an
// ExitError with code 1.
func submitRecord(ctx context.Context, cfg config.Config, rec ticket.Record) (submitResult, error) {
	client, err := newTracker(cfg)
	if err != nil {
		return submitResult{}, err
	}

	delivery, err := client.Submit(ctx, rec, "")
	if err == nil {
		return submitResult{Delivered: true, RemoteID: delivery.RemoteID, URL: delivery.URL}, nil
	}

	var retryable *tracker.RetryableError
	if !errors.As(err, &retryable) {
		// Fatal: surfaces immediately, never cached. Retrying a bad
		// credential or malformed request cannot succeed.
		return submitResult{}, WrapExitError(ExitFailure, "tracker rejected the ticket", err)
	}

	store, storeErr := newStore(cfg)
	if storeErr != nil {
		return submitResult{}, WrapExitError(ExitFailure, "opening durable cache", storeErr)
	}
	entry, putErr := store.Put(rec)
	if putErr != nil {
		// Losing the record is the one unacceptable outcome; a cache
		// medium failure is a hard error.
		return submitResult{}, WrapExitError(ExitFailure, "caching undelivered ticket", putErr)
	}

	return submitResult{
		Saved:     true,
		EntryID:   entry.ID,
		LastError: err.Error(),
	}, nil
}

// reportSubmit renders a submitResult.
func reportSubmit(f *Formatter, res submitResult) error {
	if f.JSON() {
		return f.Emit(res)
	}
	if res.Delivered {
		f.Textf("✅ Issue created: %s", res.URL)
		return nil
	}
	f.Textf("❌ Tracker unavailable: %s", res.LastError)
	f.Textf("💾 Ticket saved for retry (entry %s)", res.EntryID)
	f.Textf("Retry later with: terry cache retry --id %s", res.EntryID)
	return nil
}

// ticketFile is the YAML document written by --output.
type ticketFile struct {
	Record ticket.Record     `yaml:"ticket"`
	Scores ticket.Scores     `yaml:"scores"`
	Team   config.TeamConfig `yaml:"team_context"`
}

// writeTicketFile saves the record (plus scores and team context) to a
// local YAML file for operators who want a copy outside the tracker.
func writeTicketFile(path string, rec ticket.Record, scores ticket.Scores, cfg config.Config) error {
	data, err := yaml.Marshal(ticketFile{Record: rec, Scores: scores, Team: cfg.Team})
	if err != nil {
		return fmt.Errorf("marshalling ticket: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
