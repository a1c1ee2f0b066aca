// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ticket

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func fullRecord() Record {
	return Record{
		Title:              "Scale Aurora",
		Description:        "Aurora is on fire.",
		Priority:           PriorityP0,
		ImpactAreas:        []string{AreaCoreProduct, AreaInfrastructure},
		AcceptanceCriteria: []string{"Cluster survives 10x load"},
		CreatedAt:          time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestRenderBodyGolden(t *testing.T) {
	t.Parallel()

	// Fixed opener keeps the body deterministic; everything else is
	// fully determined by the record.
	body := RenderBody(fullRecord(), func(n int) int { return 0 })

	g := goldie.New(t)
	g.Assert(t, "issue_body", []byte(body))
}

func TestRenderBodyMinimalGolden(t *testing.T) {
	t.Parallel()

	rec := Record{Title: "Fix the login page", Priority: PriorityP3}
	body := RenderBody(rec, func(n int) int { return 0 })

	g := goldie.New(t)
	g.Assert(t, "issue_body_minimal", []byte(body))
}

func TestRenderBodyOpenerSelection(t *testing.T) {
	t.Parallel()

	rec := Record{Title: "x", Priority: PriorityP2}
	for i := range openers {
		body := RenderBody(rec, func(n int) int { return i })
		assert.Contains(t, body, openers[i])
	}
	// Out-of-range picks wrap instead of panicking.
	assert.NotPanics(t, func() {
		RenderBody(rec, func(n int) int { return n + 3 })
	})
}

func TestLabels(t *testing.T) {
	t.Parallel()

	got := Labels(fullRecord())
	assert.Equal(t, []string{
		"priority:critical",
		"area:core-product",
		"area:infrastructure",
		LabelGenerated,
	}, got)
}

func TestAreaSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Core Product", want: "core-product"},
		{in: "User Experience (UX)", want: "user-experience"},
		{in: "  Technical Debt  ", want: "technical-debt"},
		{in: "(all parens)", want: ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, AreaSlug(tc.in), "slug of %q", tc.in)
	}
}

func TestPriorityLabelFallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "priority:medium", PriorityLabel(Priority("P7")))
	assert.Equal(t, "priority:low", PriorityLabel(PriorityP3))
}
