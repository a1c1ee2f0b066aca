// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package generate is the text-generation boundary: it turns a natural
// language description into loosely-typed ticket fields. A generation
// failure is fatal for the invocation and is never cached, because
// nothing valid was produced to cache.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// Generator produces raw ticket fields from a natural language request.
type Generator interface {
	Generate(ctx context.Context, text string) (ticket.RawFields, error)
}

// buildPrompt assembles the extraction prompt sent to the model.
func buildPrompt(text string) string {
	return `You are Terry, a witty AI Product Manager. Create a ticket in JSON format with these fields:

{
    "title": "Technical title summarizing the task",
    "description": "Full ticket description with your usual wit and style",
    "priority": "P0/P1/P2/P3",
    "impact_areas": ["Core Product", "User Experience", "Technical Debt", "Infrastructure", "Analytics"],
    "acceptance_criteria": ["Concrete, testable statements of done"],
    "scores": {
        "revenue_potential": 0-100,
        "user_impact": 0-100,
        "technical_complexity": 0-100,
        "strategic_alignment": 0-100
    }
}

List impact_areas in ranked order, most affected first.

User request: ` + text + `

Respond with valid JSON only.
`
}

// rawResponse tolerates the field shapes models actually emit: scores
// nested or flat, impact area singular or plural.
type rawResponse struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           string   `json:"priority"`
	ImpactArea         string   `json:"impact_area"`
	ImpactAreas        []string `json:"impact_areas"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Scores             *scores  `json:"scores"`

	// Flat score fallbacks for models that ignore the nesting.
	RevenuePotential    *int `json:"revenue_potential"`
	UserImpact          *int `json:"user_impact"`
	TechnicalComplexity *int `json:"technical_complexity"`
	StrategicAlignment  *int `json:"strategic_alignment"`
}

type scores struct {
	RevenuePotential    *int `json:"revenue_potential"`
	UserImpact          *int `json:"user_impact"`
	TechnicalComplexity *int `json:"technical_complexity"`
	StrategicAlignment  *int `json:"strategic_alignment"`
}

// parseResponse decodes a model's JSON output into RawFields,
// normalizing nested/flat scores and singular/plural impact areas.
// Missing scores default to ticket.DefaultScore.
func parseResponse(data []byte) (ticket.RawFields, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return ticket.RawFields{}, fmt.Errorf("parsing generated ticket JSON: %w", err)
	}

	areas := raw.ImpactAreas
	if len(areas) == 0 && strings.TrimSpace(raw.ImpactArea) != "" {
		areas = []string{raw.ImpactArea}
	}

	sc := scores{}
	if raw.Scores != nil {
		sc = *raw.Scores
	} else {
		sc.RevenuePotential = raw.RevenuePotential
		sc.UserImpact = raw.UserImpact
		sc.TechnicalComplexity = raw.TechnicalComplexity
		sc.StrategicAlignment = raw.StrategicAlignment
	}

	return ticket.RawFields{
		Title:              raw.Title,
		Description:        raw.Description,
		Priority:           raw.Priority,
		ImpactAreas:        areas,
		AcceptanceCriteria: raw.AcceptanceCriteria,
		Scores: ticket.Scores{
			RevenuePotential:    scoreOrDefault(sc.RevenuePotential),
			UserImpact:          scoreOrDefault(sc.UserImpact),
			TechnicalComplexity: scoreOrDefault(sc.TechnicalComplexity),
			StrategicAlignment:  scoreOrDefault(sc.StrategicAlignment),
		},
	}, nil
}

func scoreOrDefault(v *int) int {
	if v == nil {
		return ticket.DefaultScore
	}
	return *v
}

// extractJSON returns the first top-level JSON object in text. Models
// sometimes wrap the object in prose or code fences.
func extractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in model output")
	}
	return text[start : end+1], nil
}
