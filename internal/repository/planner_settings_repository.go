package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/havenhub/content-api/internal/models"
)

type PlannerSettingsRepository interface {
	GetByUserPlatform(ctx context.Context, userID int64, platform string) (*models.PlannerSettings, bool, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.PlannerSettings, error)
	Upsert(ctx context.Context, s *models.PlannerSettings) error
}

type plannerSettingsRepository struct {
	db *sql.DB
}

func NewPlannerSettingsRepository(db *sql.DB) PlannerSettingsRepository {
	return &plannerSettingsRepository{db: db}
}

func (r *plannerSettingsRepository) GetByUserPlatform(ctx context.Context, userID int64, platform string) (*models.PlannerSettings, bool, error) {
	query := `
		SELECT id, user_id, platform, weekly_quota, count_scheduled, created_at, updated_at
		FROM planner_settings
		WHERE user_id = $1 AND platform = $2
	`
	row := r.db.QueryRowContext(ctx, query, userID, platform)

	var s models.PlannerSettings
	err := row.Scan(&s.ID, &s.UserID, &s.Platform, &s.WeeklyQuota, &s.CountScheduled, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &s, true, nil
}

func (r *plannerSettingsRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.PlannerSettings, error) {
	query := `
		SELECT id, user_id, platform, weekly_quota, count_scheduled, created_at, updated_at
		FROM planner_settings
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var settings []*models.PlannerSettings
	for rows.Next() {
		var s models.PlannerSettings
		err := rows.Scan(&s.ID, &s.UserID, &s.Platform, &s.WeeklyQuota, &s.CountScheduled, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

func (r *plannerSettingsRepository) Upsert(ctx context.Context, s *models.PlannerSettings) error {
	query := `
		INSERT INTO planner_settings (user_id, platform, weekly_quota, count_scheduled, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, platform)
		DO UPDATE SET weekly_quota = EXCLUDED.weekly_quota,
			count_scheduled = EXCLUDED.count_scheduled,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, s.UserID, s.Platform, s.WeeklyQuota, s.CountScheduled, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
