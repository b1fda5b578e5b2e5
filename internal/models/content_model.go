package models

import (
	"database/sql"
	"time"
)

type ContentItem struct {
	ID          int64         `db:"id" json:"id"`
	UserID      int64         `db:"user_id" json:"user_id"`
	Platform    string        `db:"platform" json:"platform"`
	Pillar      string        `db:"pillar" json:"pillar"`
	ContentType string        `db:"content_type" json:"content_type"`
	Caption     string        `db:"caption" json:"caption"`
	Title       string        `db:"title" json:"title"`
	ProductID   sql.NullInt64 `db:"product_id" json:"product_id"`
	ScheduledAt sql.NullTime  `db:"scheduled_at" json:"scheduled_at"`
	PostedAt    sql.NullTime  `db:"posted_at" json:"posted_at"`
	Status      string        `db:"status" json:"status"` // draft, scheduled, posted, failed, rejected
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
}

type MediaAsset struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	FileName     string    `db:"file_name"`
	FileType     string    `db:"file_type"`
	FileSize     int64     `db:"file_size"`
	FileURL      string    `db:"file_url"`
	ThumbnailURL string    `db:"thumbnail_url"`
	CreatedAt    time.Time `db:"created_at"`
}

type ContentMedia struct {
	ContentID    int64     `db:"content_id"`
	AssetID      int64     `db:"asset_id"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPosted    = "posted"
	ContentStatusFailed    = "failed"
	ContentStatusRejected  = "rejected"
)

const (
	PlatformPinterest = "pinterest"
	PlatformInstagram = "instagram"
	PlatformTiktok    = "tiktok"
)
