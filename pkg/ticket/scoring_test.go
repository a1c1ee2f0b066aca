// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityFromScores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores Scores
		want   Priority
	}{
		{
			name:   "all max is critical",
			scores: Scores{RevenuePotential: 100, UserImpact: 100, TechnicalComplexity: 0, StrategicAlignment: 100},
			want:   PriorityP0,
		},
		{
			name:   "all defaults land on P1 boundary",
			scores: Scores{RevenuePotential: 50, UserImpact: 50, TechnicalComplexity: 50, StrategicAlignment: 50},
			// 20 + 15 + 10 + 5 = 50, below 60.
			want: PriorityP2,
		},
		{
			name:   "high revenue alone crosses 60",
			scores: Scores{RevenuePotential: 100, UserImpact: 50, TechnicalComplexity: 50, StrategicAlignment: 50},
			// 40 + 15 + 10 + 5 = 70.
			want: PriorityP1,
		},
		{
			name:   "exact 80 is P0",
			scores: Scores{RevenuePotential: 100, UserImpact: 100, TechnicalComplexity: 100, StrategicAlignment: 50},
			// 40 + 30 + 10 + 0 = 80.
			want: PriorityP0,
		},
		{
			name:   "all zero but trivial complexity",
			scores: Scores{TechnicalComplexity: 0},
			// Only the inverse-complexity term: 10.
			want: PriorityP3,
		},
		{
			name:   "exact 40 is P2",
			scores: Scores{RevenuePotential: 100, UserImpact: 0, TechnicalComplexity: 100, StrategicAlignment: 0},
			// 40 + 0 + 0 + 0 = 40.
			want: PriorityP2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, PriorityFromScores(tc.scores))
		})
	}
}

func TestImpactAreaFromScores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores Scores
		want   string
	}{
		{
			name:   "revenue dominates",
			scores: Scores{RevenuePotential: 90, UserImpact: 20, TechnicalComplexity: 10, StrategicAlignment: 10},
			want:   AreaCoreProduct,
		},
		{
			name:   "user impact dominates",
			scores: Scores{RevenuePotential: 10, UserImpact: 95, TechnicalComplexity: 10, StrategicAlignment: 10},
			want:   AreaUserExperience,
		},
		{
			name:   "complexity dominates",
			scores: Scores{RevenuePotential: 10, UserImpact: 10, TechnicalComplexity: 90, StrategicAlignment: 10},
			want:   AreaTechnicalDebt,
		},
		{
			name:   "alignment dominates",
			scores: Scores{RevenuePotential: 10, UserImpact: 10, TechnicalComplexity: 10, StrategicAlignment: 90},
			want:   AreaAnalytics,
		},
		{
			name:   "tie goes to earlier canonical area",
			scores: Scores{RevenuePotential: 50, UserImpact: 50, TechnicalComplexity: 50, StrategicAlignment: 50},
			want:   AreaCoreProduct,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ImpactAreaFromScores(tc.scores))
		})
	}
}
