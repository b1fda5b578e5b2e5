package planner

import (
	"fmt"
	"math"
)

type PillarTarget struct {
	Pillar     string  `json:"pillar"`
	Percentage float64 `json:"percentage"`
}

// TargetProvider exposes the pillar ratio table for a platform. The slice
// order is the fixed pillar priority used as the final ranking tie-break.
type TargetProvider interface {
	GetTargets(platform string) []PillarTarget
}

// Default ratio tables for the brand's three platforms. Each table must
// sum to 100; NewStaticTargets rejects anything else at startup.
func DefaultTargets() map[string][]PillarTarget {
	return map[string][]PillarTarget{
		"instagram": {
			{Pillar: "product_showcase", Percentage: 40},
			{Pillar: "educational", Percentage: 20},
			{Pillar: "ugc", Percentage: 20},
			{Pillar: "promotional", Percentage: 20},
		},
		"tiktok": {
			{Pillar: "trend", Percentage: 30},
			{Pillar: "educational", Percentage: 25},
			{Pillar: "product_showcase", Percentage: 20},
			{Pillar: "behind_scenes", Percentage: 15},
			{Pillar: "promotional", Percentage: 10},
		},
		"pinterest": {
			{Pillar: "product_showcase", Percentage: 35},
			{Pillar: "seasonal", Percentage: 25},
			{Pillar: "educational", Percentage: 20},
			{Pillar: "lifestyle", Percentage: 20},
		},
	}
}

type StaticTargets struct {
	tables map[string][]PillarTarget
}

func NewStaticTargets(tables map[string][]PillarTarget) (*StaticTargets, error) {
	for platform, targets := range tables {
		var sum float64
		for _, t := range targets {
			sum += t.Percentage
		}
		if math.Abs(sum-100) > 0.5 {
			return nil, fmt.Errorf("pillar percentages for %s sum to %.1f, want 100", platform, sum)
		}
	}
	return &StaticTargets{tables: tables}, nil
}

func (s *StaticTargets) GetTargets(platform string) []PillarTarget {
	return s.tables[platform]
}
