package planner

import "fmt"

type Recommendation struct {
	Pillar         string `json:"pillar"`
	SuggestedCount int    `json:"suggested_count"`
	Rationale      string `json:"rationale"`
}

// NeedsContent keeps only the pillars that are actually behind target.
// Unknown pillars are left out; they have no target to catch up to.
func NeedsContent(balances []PillarBalance) []PillarBalance {
	needs := make([]PillarBalance, 0, len(balances))
	for _, b := range balances {
		if b.Deficit > 0 && !b.Unknown {
			needs = append(needs, b)
		}
	}
	return needs
}

// Recommend turns the ranked balances into at most limit suggestions.
// A limit of 1 answers "what should we make next"; the caller can ask
// for more to fill a planning view. An empty result means the calendar
// is balanced, which is not an error.
func Recommend(balances []PillarBalance, limit int) []Recommendation {
	if limit <= 0 {
		limit = 1
	}

	recs := make([]Recommendation, 0, limit)
	for _, b := range NeedsContent(balances) {
		recs = append(recs, Recommendation{
			Pillar:         b.Pillar,
			SuggestedCount: b.Deficit,
			Rationale: fmt.Sprintf("%s has %d of %d planned posts, %d behind target",
				b.Pillar, b.ActualCount, b.TargetCount, b.Deficit),
		})
		if len(recs) == limit {
			break
		}
	}
	return recs
}
