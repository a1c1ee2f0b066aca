// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ticket defines the canonical ticket record and the builder
// that normalizes loosely-typed generated fields into one.
package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the ticket priority level.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

// DefaultPriority is assigned when the generated priority hint cannot
// be recognized. Unrecognized hints are flagged, never fatal.
const DefaultPriority = PriorityP2

// ParsePriority normalizes a priority hint to a Priority. Matching is
// case-insensitive and tolerates decorated forms such as
// "P0 - Drop everything and do this now!". ok is false when the hint
// is unrecognized.
func ParsePriority(hint string) (Priority, bool) {
	h := strings.ToUpper(strings.TrimSpace(hint))
	for _, p := range []Priority{PriorityP0, PriorityP1, PriorityP2, PriorityP3} {
		if h == string(p) || strings.HasPrefix(h, string(p)+" ") || strings.HasPrefix(h, string(p)+"-") {
			return p, true
		}
	}
	return DefaultPriority, false
}

// Record is the canonical submission unit. Title and Priority are
// always present; CreatedAt is set at construction and immutable.
type Record struct {
	Title              string    `yaml:"title" json:"title"`
	Description        string    `yaml:"description,omitempty" json:"description,omitempty"`
	Priority           Priority  `yaml:"priority" json:"priority"`
	ImpactAreas        []string  `yaml:"impact_areas,omitempty" json:"impact_areas,omitempty"`
	AcceptanceCriteria []string  `yaml:"acceptance_criteria,omitempty" json:"acceptance_criteria,omitempty"`
	CreatedAt          time.Time `yaml:"created_at" json:"created_at"`
}

// Validate reports whether the record satisfies the invariant that
// title and priority are present. Records failing this never reach the
// tracker or the cache.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	switch r.Priority {
	case PriorityP0, PriorityP1, PriorityP2, PriorityP3:
	default:
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", r.Priority)}
	}
	return nil
}

// RawFields is the loosely-typed field mapping returned by the
// generation step, before normalization.
type RawFields struct {
	Title              string
	Description        string
	Priority           string
	ImpactAreas        []string
	AcceptanceCriteria []string
	Scores             Scores
}

// ValidationError reports malformed input. It is the only hard failure
// in the builder and never reaches the network or the cache.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid ticket: %s %s", e.Field, e.Reason)
}
