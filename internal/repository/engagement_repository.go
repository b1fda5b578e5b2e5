package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/havenhub/content-api/internal/models"
)

type EngagementRepository interface {
	ListTopSlots(ctx context.Context, platform string, limit int) ([]*models.EngagementSlot, error)
	Upsert(ctx context.Context, slot *models.EngagementSlot) error
}

type engagementRepository struct {
	db *sql.DB
}

func NewEngagementRepository(db *sql.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) ListTopSlots(ctx context.Context, platform string, limit int) ([]*models.EngagementSlot, error) {
	query := `
		SELECT id, platform, day_of_week, hour, score, updated_at
		FROM engagement_slots
		WHERE platform = $1
		ORDER BY score DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, platform, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var slots []*models.EngagementSlot
	for rows.Next() {
		var s models.EngagementSlot
		err := rows.Scan(&s.ID, &s.Platform, &s.DayOfWeek, &s.Hour, &s.Score, &s.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		slots = append(slots, &s)
	}
	return slots, rows.Err()
}

// Upsert adds the slot's score onto any existing row for the same
// (platform, day_of_week, hour), so repeated publishes into a slot
// raise its rank.
func (r *engagementRepository) Upsert(ctx context.Context, slot *models.EngagementSlot) error {
	query := `
		INSERT INTO engagement_slots (platform, day_of_week, hour, score, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (platform, day_of_week, hour)
		DO UPDATE SET score = engagement_slots.score + EXCLUDED.score, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, slot.Platform, slot.DayOfWeek, slot.Hour, slot.Score, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
