package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentRepo struct {
	items     map[int64]*models.ContentItem
	taken     map[time.Time]bool
	scheduled map[int64]time.Time
}

func newFakeContentRepo(items ...*models.ContentItem) *fakeContentRepo {
	r := &fakeContentRepo{
		items:     make(map[int64]*models.ContentItem),
		taken:     make(map[time.Time]bool),
		scheduled: make(map[int64]time.Time),
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeContentRepo) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	return r.items[id], nil
}

func (r *fakeContentRepo) Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error) {
	r.items[item.ID] = item
	return item.ID, nil
}

func (r *fakeContentRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	return nil, nil
}

func (r *fakeContentRepo) CountByPillar(ctx context.Context, userID int64, platform string, start, end time.Time, statuses []string) (map[string]int, error) {
	return nil, nil
}

// SetScheduledAt enforces the same one-item-per-slot rule as the
// database unique index.
func (r *fakeContentRepo) SetScheduledAt(ctx context.Context, id int64, scheduledAt time.Time) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	if r.taken[scheduledAt] {
		return repository.ErrSlotTaken
	}
	r.taken[scheduledAt] = true
	r.scheduled[id] = scheduledAt
	r.items[id].Status = models.ContentStatusScheduled
	return nil
}

func (r *fakeContentRepo) UpdateStatus(ctx context.Context, status string, id int64) error {
	r.items[id].Status = status
	return nil
}

func (r *fakeContentRepo) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	r.items[id].Status = models.ContentStatusPosted
	return nil
}

func (r *fakeContentRepo) CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error) {
	item, ok := r.items[contentID]
	return ok && item.UserID == userID, nil
}

func (r *fakeContentRepo) Remove(ctx context.Context, id int64) error {
	delete(r.items, id)
	return nil
}

type fakeEngagementRepo struct {
	slots []*models.EngagementSlot
}

func (r *fakeEngagementRepo) ListTopSlots(ctx context.Context, platform string, limit int) ([]*models.EngagementSlot, error) {
	if limit < len(r.slots) {
		return r.slots[:limit], nil
	}
	return r.slots, nil
}

func (r *fakeEngagementRepo) Upsert(ctx context.Context, slot *models.EngagementSlot) error {
	r.slots = append(r.slots, slot)
	return nil
}

func draftItems(platform string, userID int64, n int) []*models.ContentItem {
	items := make([]*models.ContentItem, n)
	for i := range items {
		items[i] = &models.ContentItem{
			ID:       int64(i + 1),
			UserID:   userID,
			Platform: platform,
			Pillar:   "educational",
			Status:   models.ContentStatusDraft,
		}
	}
	return items
}

func newTestScheduler(cr *fakeContentRepo, er *fakeEngagementRepo, now time.Time) *schedulerService {
	return &schedulerService{
		cr:  cr,
		er:  er,
		now: func() time.Time { return now },
	}
}

func TestBulkScheduleSpread(t *testing.T) {
	cr := newFakeContentRepo(draftItems("pinterest", 7, 10)...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))

	result, err := s.BulkSchedule(context.Background(), 7, &transfer.BulkScheduleRequest{
		Platform:    "pinterest",
		ContentIDs:  []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Strategy:    transfer.StrategySpread,
		SpreadDays:  5,
		ItemsPerDay: 2,
		StartDate:   "2026-03-02",
	})
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 10)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.BatchID)

	// Two items per day across five consecutive days, in input order.
	perDay := make(map[string]int)
	for i, item := range result.Scheduled {
		assert.Equal(t, int64(i+1), item.ID)
		perDay[item.ScheduledAt.Format("2006-01-02")]++
	}
	require.Len(t, perDay, 5)
	for day := 2; day <= 6; day++ {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		assert.Equal(t, 2, perDay[date], date)
	}

	first := result.Scheduled[0].ScheduledAt
	assert.Equal(t, 9, first.Hour())

	require.Len(t, result.Work, 10)
	for i, w := range result.Work {
		assert.Equal(t, transfer.WorkKindPublishContent, w.Kind)
		assert.Equal(t, result.Scheduled[i].ID, w.ContentID)
		assert.Equal(t, result.Scheduled[i].ScheduledAt, w.RunAt)
	}
}

func TestBulkScheduleImmediate(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	cr := newFakeContentRepo(draftItems("instagram", 1, 3)...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, now)

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1, 2, 3},
		Strategy:   transfer.StrategyImmediate,
	})
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 3)

	for _, item := range result.Scheduled {
		assert.False(t, item.ScheduledAt.Before(now))
		assert.True(t, item.ScheduledAt.Before(now.Add(time.Minute)))
	}
}

func TestBulkSchedulePartialSuccess(t *testing.T) {
	items := draftItems("instagram", 1, 3)
	items[1].Status = models.ContentStatusPosted
	cr := newFakeContentRepo(items...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC))

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1, 2, 3, 99},
		Strategy:   transfer.StrategyImmediate,
	})
	require.NoError(t, err)

	require.Len(t, result.Scheduled, 2)
	assert.Equal(t, int64(1), result.Scheduled[0].ID)
	assert.Equal(t, int64(3), result.Scheduled[1].ID)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, int64(2), result.Errors[0].ID)
	assert.Equal(t, ErrAlreadyPublished.Error(), result.Errors[0].Reason)
	assert.Equal(t, int64(99), result.Errors[1].ID)
	assert.Equal(t, ErrContentNotFound.Error(), result.Errors[1].Reason)
}

func TestBulkScheduleOptimalFallbackRanking(t *testing.T) {
	// Monday morning; instagram's top fallback slot is Wednesday 11:00.
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cr := newFakeContentRepo(draftItems("instagram", 1, 2)...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, now)

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1, 2},
		Strategy:   transfer.StrategyOptimal,
	})
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 2)

	assert.Equal(t, time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC), result.Scheduled[0].ScheduledAt)
	assert.Equal(t, time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC), result.Scheduled[1].ScheduledAt)
}

func TestBulkScheduleOptimalUsesEngagementHistory(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cr := newFakeContentRepo(draftItems("tiktok", 1, 1)...)
	er := &fakeEngagementRepo{slots: []*models.EngagementSlot{
		{Platform: "tiktok", DayOfWeek: 5, Hour: 21, Score: 0.99},
	}}
	s := newTestScheduler(cr, er, now)

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "tiktok",
		ContentIDs: []int64{1},
		Strategy:   transfer.StrategyOptimal,
	})
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	assert.Equal(t, time.Date(2026, 3, 6, 21, 0, 0, 0, time.UTC), result.Scheduled[0].ScheduledAt)
}

func TestBulkScheduleRetriesTakenSlot(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cr := newFakeContentRepo(draftItems("instagram", 1, 1)...)
	// Occupy the top candidate so the item has to fall through to the
	// second-ranked slot.
	cr.taken[time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)] = true
	s := newTestScheduler(cr, &fakeEngagementRepo{}, now)

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1},
		Strategy:   transfer.StrategyOptimal,
	})
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	assert.Empty(t, result.Errors)
	assert.Equal(t, time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC), result.Scheduled[0].ScheduledAt)
}

func TestBulkScheduleGivesUpAfterMaxAttempts(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	cr := newFakeContentRepo(draftItems("instagram", 1, 1)...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, now)

	// Every fallback slot in the first cycle is occupied.
	for _, at := range []time.Time{
		time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
	} {
		cr.taken[at] = true
	}

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1},
		Strategy:   transfer.StrategyOptimal,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Scheduled)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Reason, "no free slot")
}

func TestBulkScheduleRejectsBadRequests(t *testing.T) {
	cr := newFakeContentRepo(draftItems("instagram", 1, 1)...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, time.Now())

	_, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform: "instagram",
		Strategy: transfer.StrategyImmediate,
	})
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1},
		Strategy:   "yolo",
	})
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	_, err = s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "friendster",
		ContentIDs: []int64{1},
		Strategy:   transfer.StrategyImmediate,
	})
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestBulkScheduleSkipsForeignContent(t *testing.T) {
	items := draftItems("instagram", 1, 2)
	items[1].UserID = 42
	cr := newFakeContentRepo(items...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, time.Now())

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1, 2},
		Strategy:   transfer.StrategyImmediate,
	})
	require.NoError(t, err)
	require.Len(t, result.Scheduled, 1)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, int64(2), result.Errors[0].ID)
	assert.Equal(t, ErrContentNotFound.Error(), result.Errors[0].Reason)
}

func TestBulkScheduleSkipsPlatformMismatch(t *testing.T) {
	items := draftItems("instagram", 1, 2)
	items[1].Platform = "tiktok"
	cr := newFakeContentRepo(items...)
	s := newTestScheduler(cr, &fakeEngagementRepo{}, time.Now())

	result, err := s.BulkSchedule(context.Background(), 1, &transfer.BulkScheduleRequest{
		Platform:   "instagram",
		ContentIDs: []int64{1, 2},
		Strategy:   transfer.StrategyImmediate,
	})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "content belongs to another platform", result.Errors[0].Reason)
}

func TestSlotsForDay(t *testing.T) {
	s := newTestScheduler(newFakeContentRepo(), &fakeEngagementRepo{}, time.Now())

	slots := s.SlotsForDay("pinterest", time.Monday)
	require.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.Equal(t, int(time.Monday), slot.DayOfWeek)
	}

	assert.Empty(t, s.SlotsForDay("friendster", time.Monday))
}

func TestTopSlotsFallsBackToDefaults(t *testing.T) {
	s := newTestScheduler(newFakeContentRepo(), &fakeEngagementRepo{}, time.Now())

	slots, err := s.TopSlots(context.Background(), "tiktok", 0)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.GreaterOrEqual(t, slots[i-1].Score, slots[i].Score)
	}
}
