package queue

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/havenhub/content-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContentRepo struct {
	item      *models.ContentItem
	statusSet string
}

func (r *stubContentRepo) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	return r.item, nil
}

func (r *stubContentRepo) Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error) {
	return 0, nil
}

func (r *stubContentRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	return nil, nil
}

func (r *stubContentRepo) CountByPillar(ctx context.Context, userID int64, platform string, start, end time.Time, statuses []string) (map[string]int, error) {
	return nil, nil
}

func (r *stubContentRepo) SetScheduledAt(ctx context.Context, id int64, scheduledAt time.Time) error {
	return nil
}

func (r *stubContentRepo) UpdateStatus(ctx context.Context, status string, id int64) error {
	r.statusSet = status
	return nil
}

func (r *stubContentRepo) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	return nil
}

func (r *stubContentRepo) CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error) {
	return true, nil
}

func (r *stubContentRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type stubSelectedAccountRepo struct {
	selected []*models.SelectedAccount
}

func (r *stubSelectedAccountRepo) Create(ctx context.Context, tx *sql.Tx, sa *models.SelectedAccount) error {
	return nil
}

func (r *stubSelectedAccountRepo) ListByContentID(ctx context.Context, contentID int64) ([]*models.SelectedAccount, error) {
	return r.selected, nil
}

func (r *stubSelectedAccountRepo) Remove(ctx context.Context, contentID, accountID int64) error {
	return nil
}

type stubSocialAccountRepo struct {
	accounts map[int64]*models.SocialAccount
}

func (r *stubSocialAccountRepo) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	return 0, nil
}

func (r *stubSocialAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	return r.accounts[id], nil
}

func (r *stubSocialAccountRepo) ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (r *stubSocialAccountRepo) ListExpiringBetween(ctx context.Context, initialTime, finalTime time.Time) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (r *stubSocialAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	return true, nil
}

func (r *stubSocialAccountRepo) SetToken(ctx context.Context, userID int64, oldAccessToken string, sa *models.SocialAccount) error {
	return nil
}

func (r *stubSocialAccountRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

type recordingHistoryRepo struct {
	mu   sync.Mutex
	rows []*models.PublishHistory
}

func (r *recordingHistoryRepo) Create(ctx context.Context, ph *models.PublishHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, ph)
	return int64(len(r.rows)), nil
}

func (r *recordingHistoryRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.PublishHistory, error) {
	return nil, nil
}

type recordingEngagementRepo struct {
	mu    sync.Mutex
	slots []*models.EngagementSlot
}

func (r *recordingEngagementRepo) ListTopSlots(ctx context.Context, platform string, limit int) ([]*models.EngagementSlot, error) {
	return nil, nil
}

func (r *recordingEngagementRepo) Upsert(ctx context.Context, slot *models.EngagementSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots = append(r.slots, slot)
	return nil
}

type stubPinterestService struct {
	err error
}

func (s *stubPinterestService) PinterestCallback(ctx context.Context, code string, userID int64) error {
	return nil
}

func (s *stubPinterestService) RefreshPinterestToken(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	return nil
}

func (s *stubPinterestService) HandlePinterestPost(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error {
	return s.err
}

type stubTiktokService struct{}

func (s *stubTiktokService) TiktokCallback(ctx context.Context, code string, userID int64) error {
	return nil
}

func (s *stubTiktokService) RefreshTiktokToken(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	return nil
}

func (s *stubTiktokService) HandleTiktokPost(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error {
	return nil
}

type stubInstagramService struct{}

func (s *stubInstagramService) InstagramCallback(ctx context.Context, code string, userID int64) error {
	return nil
}

func (s *stubInstagramService) RefreshInstagramToken(ctx context.Context, userID int64, refreshToken string) error {
	return nil
}

func (s *stubInstagramService) HandleInstagramPost(ctx context.Context, item *models.ContentItem, socialAcc *models.SocialAccount) error {
	return nil
}

func newTestQueue(item *models.ContentItem, pinErr error) (*Queue, *stubContentRepo, *recordingHistoryRepo, *recordingEngagementRepo) {
	cr := &stubContentRepo{item: item}
	sa := &stubSelectedAccountRepo{selected: []*models.SelectedAccount{
		{ContentID: item.ID, AccountID: 1},
	}}
	ac := &stubSocialAccountRepo{accounts: map[int64]*models.SocialAccount{
		1: {ID: 1, UserID: 1, Platform: models.PlatformPinterest},
	}}
	ph := &recordingHistoryRepo{}
	er := &recordingEngagementRepo{}
	q := NewQueue(cr, sa, ac, ph, er, &stubPinterestService{err: pinErr}, &stubTiktokService{}, &stubInstagramService{})
	return q, cr, ph, er
}

func scheduledItem(at time.Time) *models.ContentItem {
	return &models.ContentItem{
		ID:          5,
		UserID:      1,
		Platform:    models.PlatformPinterest,
		Pillar:      "product_showcase",
		Status:      models.ContentStatusScheduled,
		ScheduledAt: sql.NullTime{Time: at, Valid: true},
	}
}

func TestPublishContentRecordsEngagementSlot(t *testing.T) {
	at := time.Date(2026, 3, 7, 20, 0, 0, 0, time.UTC) // Saturday
	q, cr, ph, er := newTestQueue(scheduledItem(at), nil)

	err := q.PublishContent(5)
	require.NoError(t, err)

	require.Len(t, er.slots, 1)
	assert.Equal(t, models.PlatformPinterest, er.slots[0].Platform)
	assert.Equal(t, int(time.Saturday), er.slots[0].DayOfWeek)
	assert.Equal(t, 20, er.slots[0].Hour)
	assert.Equal(t, float64(1), er.slots[0].Score)

	require.Len(t, ph.rows, 1)
	assert.Empty(t, ph.rows[0].ErrorMessage)
	assert.Empty(t, cr.statusSet)
}

func TestPublishContentFailureSkipsEngagement(t *testing.T) {
	at := time.Date(2026, 3, 7, 20, 0, 0, 0, time.UTC)
	q, cr, ph, er := newTestQueue(scheduledItem(at), errors.New("board not found"))

	err := q.PublishContent(5)
	require.NoError(t, err)

	assert.Empty(t, er.slots)
	require.Len(t, ph.rows, 1)
	assert.Equal(t, "board not found", ph.rows[0].ErrorMessage)
	assert.Equal(t, models.ContentStatusFailed, cr.statusSet)
}

func TestPublishContentSkipsDrafts(t *testing.T) {
	item := &models.ContentItem{
		ID:       5,
		UserID:   1,
		Platform: models.PlatformPinterest,
		Status:   models.ContentStatusDraft,
	}
	q, _, ph, er := newTestQueue(item, nil)

	err := q.PublishContent(5)
	require.NoError(t, err)

	assert.Empty(t, er.slots)
	assert.Empty(t, ph.rows)
}
