package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
)

type SettingsService interface {
	GetSettings(ctx context.Context, userID int64) ([]*models.PlannerSettings, error)
	UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) error
}

type settingsService struct {
	cfg config.Config
	ps  repository.PlannerSettingsRepository
}

func NewSettingsService(cfg config.Config, ps repository.PlannerSettingsRepository) SettingsService {
	return &settingsService{
		cfg: cfg,
		ps:  ps,
	}
}

// GetSettings returns one row per platform. Platforms the user never
// configured come back filled with the config defaults so the client
// always sees a complete picture.
func (s *settingsService) GetSettings(ctx context.Context, userID int64) ([]*models.PlannerSettings, error) {
	stored, err := s.ps.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting planner settings: %w", err)
	}

	byPlatform := make(map[string]*models.PlannerSettings, len(stored))
	for _, row := range stored {
		byPlatform[row.Platform] = row
	}

	platforms := []string{models.PlatformPinterest, models.PlatformInstagram, models.PlatformTiktok}
	settings := make([]*models.PlannerSettings, 0, len(platforms))
	for _, platform := range platforms {
		if row, ok := byPlatform[platform]; ok {
			settings = append(settings, row)
			continue
		}
		settings = append(settings, &models.PlannerSettings{
			UserID:         userID,
			Platform:       platform,
			WeeklyQuota:    s.cfg.DefaultWeeklyQuota,
			CountScheduled: true,
		})
	}

	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, su *transfer.SettingsUpdate) error {
	if su == nil {
		err := errors.New("settings update data is nil")
		slog.Info(err.Error())
		return err
	}

	switch su.Platform {
	case models.PlatformPinterest, models.PlatformInstagram, models.PlatformTiktok:
	default:
		slog.Info("settings for unsupported platform", "platform", su.Platform)
		return ErrUnknownPlatform
	}

	if su.WeeklyQuota <= 0 {
		err := errors.New("weekly quota must be positive")
		slog.Info(err.Error())
		return err
	}

	countScheduled := true
	if su.CountScheduled != nil {
		countScheduled = *su.CountScheduled
	}

	settings := models.PlannerSettings{
		UserID:         userID,
		Platform:       su.Platform,
		WeeklyQuota:    su.WeeklyQuota,
		CountScheduled: countScheduled,
	}

	err := s.ps.Upsert(ctx, &settings)
	if err != nil {
		return fmt.Errorf("error saving planner settings: %w", err)
	}
	return nil
}
