package transfer

import "time"

const (
	StrategyImmediate = "immediate"
	StrategySpread    = "spread"
	StrategyOptimal   = "optimal"
)

type BulkScheduleRequest struct {
	Platform    string  `json:"platform"`
	ContentIDs  []int64 `json:"content_ids"`
	Strategy    string  `json:"strategy"`
	SpreadDays  int     `json:"spread_days,omitempty"`
	ItemsPerDay int     `json:"items_per_day,omitempty"`
	StartDate   string  `json:"start_date,omitempty"` // 2006-01-02
}

type ScheduledItem struct {
	ID          int64     `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type ScheduleError struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BulkScheduleResult always carries both lists so a caller can tell
// partial success from total failure without inspecting status codes.
type BulkScheduleResult struct {
	BatchID   string          `json:"batch_id"`
	Scheduled []ScheduledItem `json:"scheduled"`
	Errors    []ScheduleError `json:"errors"`
	Work      []ScheduledWork `json:"-"`
}

// ScheduledWork describes deferred work for whatever job runner the
// caller owns; the scheduler itself never runs anything later.
type ScheduledWork struct {
	Kind      string    `json:"kind"`
	ContentID int64     `json:"content_id"`
	RunAt     time.Time `json:"run_at"`
}

const WorkKindPublishContent = "content:publish"
