package service

import (
	"context"
	"testing"
	"time"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCountRepo struct {
	*fakeContentRepo
	counts      map[string]int
	gotStart    time.Time
	gotEnd      time.Time
	gotStatuses []string
}

func (r *stubCountRepo) CountByPillar(ctx context.Context, userID int64, platform string, start, end time.Time, statuses []string) (map[string]int, error) {
	r.gotStart = start
	r.gotEnd = end
	r.gotStatuses = statuses
	return r.counts, nil
}

type fakeSettingsRepo struct {
	rows map[string]*models.PlannerSettings
}

func (r *fakeSettingsRepo) GetByUserPlatform(ctx context.Context, userID int64, platform string) (*models.PlannerSettings, bool, error) {
	row, ok := r.rows[platform]
	return row, ok, nil
}

func (r *fakeSettingsRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.PlannerSettings, error) {
	var rows []*models.PlannerSettings
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, s *models.PlannerSettings) error {
	if r.rows == nil {
		r.rows = make(map[string]*models.PlannerSettings)
	}
	r.rows[s.Platform] = s
	return nil
}

func newTestBalanceService(t *testing.T, counts map[string]int, settings map[string]*models.PlannerSettings) (BalanceService, *stubCountRepo) {
	t.Helper()

	targets, err := planner.NewStaticTargets(planner.DefaultTargets())
	require.NoError(t, err)

	cfg := config.Config{
		WeekStartDay:       "monday",
		DefaultWeeklyQuota: 10,
	}
	cr := &stubCountRepo{fakeContentRepo: newFakeContentRepo(), counts: counts}
	return NewBalanceService(cfg, targets, cr, &fakeSettingsRepo{rows: settings}), cr
}

func TestGetBalanceWeeklyExample(t *testing.T) {
	counts := map[string]int{
		"product_showcase": 2,
		"ugc":              1,
		"promotional":      1,
	}
	s, cr := newTestBalanceService(t, counts, nil)

	// A Thursday; the Monday-start week is Mar 2 through Mar 9.
	ref := time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC)
	report, err := s.GetBalance(context.Background(), 1, "instagram", planner.PeriodWeek, ref)
	require.NoError(t, err)

	assert.Equal(t, 10, report.TotalVolume)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), cr.gotStart)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), cr.gotEnd)

	require.Len(t, report.Balances, 4)
	assert.Equal(t, "educational", report.Balances[0].Pillar)
	assert.Equal(t, 2, report.Balances[0].Deficit)
	assert.Equal(t, "product_showcase", report.Balances[1].Pillar)

	require.Len(t, report.NeedsContent, 4)

	// Scheduled items count by default.
	assert.ElementsMatch(t, []string{models.ContentStatusPosted, models.ContentStatusScheduled}, cr.gotStatuses)
}

func TestGetBalancePostedOnlyWhenConfigured(t *testing.T) {
	settings := map[string]*models.PlannerSettings{
		"instagram": {UserID: 1, Platform: "instagram", WeeklyQuota: 20, CountScheduled: false},
	}
	s, cr := newTestBalanceService(t, nil, settings)

	report, err := s.GetBalance(context.Background(), 1, "instagram", planner.PeriodWeek, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 20, report.TotalVolume)
	assert.Equal(t, []string{models.ContentStatusPosted}, cr.gotStatuses)
}

func TestGetBalanceMonthlyVolume(t *testing.T) {
	s, _ := newTestBalanceService(t, nil, nil)

	report, err := s.GetBalance(context.Background(), 1, "tiktok", planner.PeriodMonth, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 40, report.TotalVolume)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), report.Window.Start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), report.Window.End)
}

func TestGetBalanceUnknownPillarFlagged(t *testing.T) {
	counts := map[string]int{"memes": 3}
	s, _ := newTestBalanceService(t, counts, nil)

	report, err := s.GetBalance(context.Background(), 1, "pinterest", planner.PeriodWeek, time.Now())
	require.NoError(t, err)

	require.Len(t, report.Balances, 5)
	last := report.Balances[len(report.Balances)-1]
	assert.Equal(t, "memes", last.Pillar)
	assert.True(t, last.Unknown)
	assert.Equal(t, -3, last.Deficit)

	// Unknown pillars never produce recommendations.
	for _, b := range report.NeedsContent {
		assert.False(t, b.Unknown)
	}
}

func TestGetBalanceErrors(t *testing.T) {
	s, _ := newTestBalanceService(t, nil, nil)

	_, err := s.GetBalance(context.Background(), 1, "friendster", planner.PeriodWeek, time.Now())
	assert.ErrorIs(t, err, ErrUnknownPlatform)

	_, err = s.GetBalance(context.Background(), 1, "instagram", "fortnight", time.Now())
	assert.ErrorIs(t, err, planner.ErrInvalidPeriod)
}

func TestGetRecommendations(t *testing.T) {
	counts := map[string]int{
		"product_showcase": 2,
		"ugc":              1,
		"promotional":      1,
	}
	s, _ := newTestBalanceService(t, counts, nil)

	resp, err := s.GetRecommendations(context.Background(), 1, "instagram", planner.PeriodWeek, time.Now(), 2)
	require.NoError(t, err)

	assert.False(t, resp.Balanced)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "educational", resp.Recommendations[0].Pillar)
	assert.Equal(t, 2, resp.Recommendations[0].SuggestedCount)
	assert.Contains(t, resp.Recommendations[0].Rationale, "behind target")
}

func TestGetRecommendationsBalanced(t *testing.T) {
	counts := map[string]int{
		"product_showcase": 4,
		"educational":      2,
		"ugc":              2,
		"promotional":      2,
	}
	s, _ := newTestBalanceService(t, counts, nil)

	resp, err := s.GetRecommendations(context.Background(), 1, "instagram", planner.PeriodWeek, time.Now(), 3)
	require.NoError(t, err)

	assert.True(t, resp.Balanced)
	assert.Empty(t, resp.Recommendations)
}
