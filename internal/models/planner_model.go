package models

import "time"

// PlannerSettings holds the per-user, per-platform planning knobs the
// balance calculator reads: the weekly content quota that defines the
// target volume and whether scheduled-but-unposted items count as actual.
type PlannerSettings struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Platform       string    `db:"platform" json:"platform"`
	WeeklyQuota    int       `db:"weekly_quota" json:"weekly_quota"`
	CountScheduled bool      `db:"count_scheduled" json:"count_scheduled"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// EngagementSlot is one historically observed posting slot with its
// engagement score, used to rank candidates for the optimal strategy.
type EngagementSlot struct {
	ID        int64     `db:"id" json:"id"`
	Platform  string    `db:"platform" json:"platform"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"` // 0 = Sunday
	Hour      int       `db:"hour" json:"hour"`
	Score     float64   `db:"score" json:"score"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type PublishHistory struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	ContentID    int64     `db:"content_id" json:"content_id"`
	AccountID    int64     `db:"account_id" json:"account_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Product struct {
	ID        int64     `db:"id" json:"id"`
	ShopifyID int64     `db:"shopify_id" json:"shopify_id"`
	Title     string    `db:"title" json:"title"`
	Handle    string    `db:"handle" json:"handle"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Price     string    `db:"price" json:"price"`
	Status    string    `db:"status" json:"status"`
	SyncedAt  time.Time `db:"synced_at" json:"synced_at"`
}
