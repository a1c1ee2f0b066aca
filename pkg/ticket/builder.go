// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Builder normalizes RawFields into a canonical Record. The zero value
// is ready to use; Now may be set for deterministic timestamps in tests.
type Builder struct {
	// Now supplies the record creation time. Defaults to time.Now.
	Now func() time.Time
}

// Build validates and normalizes raw generated fields. It returns the
// canonical record plus a list of normalization flags (e.g. an
// unrecognized priority that was defaulted). The only hard failure is
// a missing title, returned as a *ValidationError. Build performs no
// I/O.
func (b *Builder) Build(raw RawFields) (Record, []string, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return Record{}, nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	var flags []string

	prio, ok := ParsePriority(raw.Priority)
	if !ok && strings.TrimSpace(raw.Priority) != "" {
		flags = append(flags, fmt.Sprintf("unrecognized priority %q, defaulting to %s", raw.Priority, DefaultPriority))
	} else if !ok {
		flags = append(flags, fmt.Sprintf("no priority given, defaulting to %s", DefaultPriority))
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	rec := Record{
		Title:              title,
		Description:        strings.TrimSpace(raw.Description),
		Priority:           prio,
		ImpactAreas:        cleanList(raw.ImpactAreas),
		AcceptanceCriteria: cleanList(raw.AcceptanceCriteria),
		CreatedAt:          now(),
	}
	return rec, flags, nil
}

// cleanList trims each entry and drops blanks, preserving order. Order
// is meaningful: impact areas are ranked, acceptance criteria are
// numbered.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
