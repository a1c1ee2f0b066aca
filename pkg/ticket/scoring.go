// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ticket

// Scores holds the 0-100 context scores attached to a generated ticket.
// They drive priority and impact-area derivation for tickets created
// without an explicit priority.
type Scores struct {
	RevenuePotential    int `yaml:"revenue_potential" json:"revenue_potential"`
	UserImpact          int `yaml:"user_impact" json:"user_impact"`
	TechnicalComplexity int `yaml:"technical_complexity" json:"technical_complexity"`
	StrategicAlignment  int `yaml:"strategic_alignment" json:"strategic_alignment"`
}

// DefaultScore is used for any score the generation step did not supply.
const DefaultScore = 50

// Canonical impact areas, in ranking-tiebreak order.
const (
	AreaCoreProduct    = "Core Product"
	AreaUserExperience = "User Experience"
	AreaTechnicalDebt  = "Technical Debt"
	AreaInfrastructure = "Infrastructure"
	AreaAnalytics      = "Analytics"
)

// PriorityFromScores derives a priority from weighted context scores:
// revenue 40%, user impact 30%, alignment 20%, inverse complexity 10%.
func PriorityFromScores(s Scores) Priority {
	total := float64(s.RevenuePotential)*0.4 +
		float64(s.UserImpact)*0.3 +
		float64(s.StrategicAlignment)*0.2 +
		float64(100-s.TechnicalComplexity)*0.1

	switch {
	case total >= 80:
		return PriorityP0
	case total >= 60:
		return PriorityP1
	case total >= 40:
		return PriorityP2
	default:
		return PriorityP3
	}
}

// ImpactAreaFromScores returns the canonical area with the highest
// derived score. Ties go to the earlier area in canonical order.
func ImpactAreaFromScores(s Scores) string {
	areas := []struct {
		name  string
		score float64
	}{
		{AreaCoreProduct, float64(s.RevenuePotential)},
		{AreaUserExperience, float64(s.UserImpact)},
		{AreaTechnicalDebt, float64(s.TechnicalComplexity)},
		{AreaInfrastructure, (float64(s.TechnicalComplexity) + float64(s.StrategicAlignment)) / 2},
		{AreaAnalytics, float64(s.StrategicAlignment)},
	}

	best := areas[0]
	for _, a := range areas[1:] {
		if a.score > best.score {
			best = a
		}
	}
	return best.name
}
