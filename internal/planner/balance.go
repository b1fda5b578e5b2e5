package planner

import (
	"math"
	"sort"
)

type PillarBalance struct {
	Pillar           string  `json:"pillar"`
	TargetPercentage float64 `json:"target_percentage"`
	TargetCount      int     `json:"target_count"`
	ActualCount      int     `json:"actual_count"`
	Deficit          int     `json:"deficit"`
	PercentOfTarget  float64 `json:"percent_of_target"`
	Unknown          bool    `json:"unknown,omitempty"`

	priority int
}

// ComputeBalance compares actual counts to the ratio table for a total
// volume and returns every pillar ranked by how far behind it is:
// deficit descending, then lower actual count, then ratio-table order.
// Counted pillars missing from the table come back as zero-target rows
// flagged Unknown so one misconfigured pillar never hides the rest.
func ComputeBalance(targets []PillarTarget, actual map[string]int, volume int) []PillarBalance {
	balances := make([]PillarBalance, 0, len(targets))
	known := make(map[string]struct{}, len(targets))

	for i, t := range targets {
		known[t.Pillar] = struct{}{}
		target := int(math.Round(t.Percentage / 100 * float64(volume)))
		count := actual[t.Pillar]

		b := PillarBalance{
			Pillar:           t.Pillar,
			TargetPercentage: t.Percentage,
			TargetCount:      target,
			ActualCount:      count,
			Deficit:          target - count,
			priority:         i,
		}
		if target > 0 {
			b.PercentOfTarget = float64(count) / float64(target) * 100
		}
		balances = append(balances, b)
	}

	// Unknown pillars sort by name first so their priorities are stable.
	var extras []string
	for pillar := range actual {
		if _, ok := known[pillar]; !ok {
			extras = append(extras, pillar)
		}
	}
	sort.Strings(extras)
	for i, pillar := range extras {
		balances = append(balances, PillarBalance{
			Pillar:      pillar,
			ActualCount: actual[pillar],
			Deficit:     -actual[pillar],
			Unknown:     true,
			priority:    len(targets) + i,
		})
	}

	sort.SliceStable(balances, func(i, j int) bool {
		if balances[i].Deficit != balances[j].Deficit {
			return balances[i].Deficit > balances[j].Deficit
		}
		if balances[i].ActualCount != balances[j].ActualCount {
			return balances[i].ActualCount < balances[j].ActualCount
		}
		return balances[i].priority < balances[j].priority
	})

	return balances
}
