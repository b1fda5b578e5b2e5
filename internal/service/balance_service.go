package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/planner"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
)

// weeksPerMonth converts the weekly quota into a monthly target volume.
const weeksPerMonth = 4

type BalanceService interface {
	GetBalance(ctx context.Context, userID int64, platform string, period planner.PeriodType, ref time.Time) (*transfer.BalanceReport, error)
	GetRecommendations(ctx context.Context, userID int64, platform string, period planner.PeriodType, ref time.Time, limit int) (*transfer.RecommendationResponse, error)
}

type balanceService struct {
	cfg     config.Config
	targets planner.TargetProvider
	cr      repository.ContentRepository
	ps      repository.PlannerSettingsRepository
}

func NewBalanceService(
	cfg config.Config,
	targets planner.TargetProvider,
	cr repository.ContentRepository,
	ps repository.PlannerSettingsRepository) BalanceService {
	return &balanceService{
		cfg:     cfg,
		targets: targets,
		cr:      cr,
		ps:      ps,
	}
}

func (s *balanceService) GetBalance(ctx context.Context, userID int64, platform string, period planner.PeriodType, ref time.Time) (*transfer.BalanceReport, error) {
	targets := s.targets.GetTargets(platform)
	if len(targets) == 0 {
		slog.Info("no ratio table for platform", "platform", platform)
		return nil, ErrUnknownPlatform
	}

	window, err := planner.ComputeWindow(platform, period, ref, planner.ParseWeekday(s.cfg.WeekStartDay))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	settings, found, err := s.ps.GetByUserPlatform(ctx, userID, platform)
	if err != nil {
		return nil, fmt.Errorf("error getting planner settings: %w", err)
	}

	quota := s.cfg.DefaultWeeklyQuota
	countScheduled := true
	if found {
		quota = settings.WeeklyQuota
		countScheduled = settings.CountScheduled
	}

	// Target volume is the planned quota for the window, never a sum of
	// actuals. A user who posted nothing still sees the full deficits.
	volume := quota
	if period == planner.PeriodMonth {
		volume = quota * weeksPerMonth
	}

	statuses := []string{models.ContentStatusPosted}
	if countScheduled {
		statuses = append(statuses, models.ContentStatusScheduled)
	}

	actual, err := s.cr.CountByPillar(ctx, userID, platform, window.Start, window.End, statuses)
	if err != nil {
		return nil, fmt.Errorf("error counting content by pillar: %w", err)
	}

	balances := planner.ComputeBalance(targets, actual, volume)
	for _, b := range balances {
		if b.Unknown {
			slog.Warn("content uses a pillar outside the platform ratio table",
				"platform", platform, "pillar", b.Pillar, "count", b.ActualCount)
		}
	}

	report := &transfer.BalanceReport{
		Window:       window,
		TotalVolume:  volume,
		Balances:     balances,
		NeedsContent: planner.NeedsContent(balances),
	}

	return report, nil
}

func (s *balanceService) GetRecommendations(ctx context.Context, userID int64, platform string, period planner.PeriodType, ref time.Time, limit int) (*transfer.RecommendationResponse, error) {
	report, err := s.GetBalance(ctx, userID, platform, period, ref)
	if err != nil {
		return nil, err
	}

	recommendations := planner.Recommend(report.Balances, limit)

	return &transfer.RecommendationResponse{
		Window:          report.Window,
		Recommendations: recommendations,
		Balanced:        len(recommendations) == 0,
	}, nil
}
