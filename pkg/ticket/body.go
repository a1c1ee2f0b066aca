// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ticket

import (
	"fmt"
	"strings"
)

// priorityLabels maps priorities to tracker labels.
var priorityLabels = map[Priority]string{
	PriorityP0: "priority:critical",
	PriorityP1: "priority:high",
	PriorityP2: "priority:medium",
	PriorityP3: "priority:low",
}

// LabelGenerated marks issues created by terry.
const LabelGenerated = "generated-by-terry"

// PriorityLabel returns the tracker label for a priority.
func PriorityLabel(p Priority) string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return priorityLabels[DefaultPriority]
}

// AreaSlug converts an impact area to a label-safe slug: anything in
// parentheses is dropped, the rest lowercased with spaces as hyphens.
func AreaSlug(area string) string {
	if i := strings.Index(area, "("); i >= 0 {
		area = area[:i]
	}
	area = strings.ToLower(strings.TrimSpace(area))
	return strings.ReplaceAll(area, " ", "-")
}

// Labels returns the full label set for a record: one priority label,
// one area label per impact area (ranked order preserved), and the
// generated-by-terry marker.
func Labels(rec Record) []string {
	labels := []string{PriorityLabel(rec.Priority)}
	for _, area := range rec.ImpactAreas {
		if slug := AreaSlug(area); slug != "" {
			labels = append(labels, "area:"+slug)
		}
	}
	return append(labels, LabelGenerated)
}

// openers are the corporate-flavored first lines of a rendered body.
var openers = []string{
	"As per my last email...",
	"Let's circle back on this one.",
	"I'm just trying to add value to the conversation here...",
	"Per our previous sync (that you definitely attended)...",
	"In the spirit of radical candor...",
	"Let me play devil's advocate here (as if we needed more devils)...",
}

// priorityBlurbs decorate the priority line.
var priorityBlurbs = map[Priority]string{
	PriorityP0: "Drop everything and do this now!",
	PriorityP1: "Very important, but you can finish your coffee first",
	PriorityP2: "Important, but not as important as your weekend plans",
	PriorityP3: "We'll get to it when we get to it",
}

// RenderBody renders the markdown issue body for a record. pick
// selects the opener line index given len(openers); pass rand.IntN for
// production use or a fixed function for deterministic output. The
// body is otherwise fully determined by the record.
func RenderBody(rec Record, pick func(n int) int) string {
	var sb strings.Builder

	sb.WriteString(openers[pick(len(openers))%len(openers)])
	sb.WriteString("\n\n🎯 OBJECTIVE\n")
	sb.WriteString(rec.Title)
	sb.WriteString("\n")

	if rec.Description != "" {
		sb.WriteString("\n📝 DESCRIPTION\n")
		sb.WriteString(rec.Description)
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n⚡ PRIORITY: %s - %s\n", rec.Priority, priorityBlurbs[rec.Priority])

	if len(rec.ImpactAreas) > 0 {
		sb.WriteString("\n💥 IMPACT AREAS\n")
		for i, area := range rec.ImpactAreas {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, area)
		}
	}

	if len(rec.AcceptanceCriteria) > 0 {
		sb.WriteString("\n✅ ACCEPTANCE CRITERIA\n")
		for _, c := range rec.AcceptanceCriteria {
			fmt.Fprintf(&sb, "- [ ] %s\n", c)
		}
	}

	sb.WriteString("\n---\n> Generated by Terry 🤖\n")
	return sb.String()
}
