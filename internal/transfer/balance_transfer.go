package transfer

import "github.com/havenhub/content-api/internal/planner"

// BalanceReport is the full per-platform pillar balance view. Balances
// holds every pillar ranked by deficit; NeedsContent is the subset
// actually behind target. An empty NeedsContent on a non-nil report
// means the calendar is balanced.
type BalanceReport struct {
	Window       planner.Window          `json:"window"`
	TotalVolume  int                     `json:"total_volume"`
	Balances     []planner.PillarBalance `json:"balances"`
	NeedsContent []planner.PillarBalance `json:"needs_content"`
}

type RecommendationResponse struct {
	Window          planner.Window           `json:"window"`
	Recommendations []planner.Recommendation `json:"recommendations"`
	Balanced        bool                     `json:"balanced"`
}
