package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (ContentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContentRepository(db), mock
}

func TestCountByPillar(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	statuses := []string{"scheduled", "posted"}

	rows := sqlmock.NewRows([]string{"pillar", "count"}).
		AddRow("product_showcase", 2).
		AddRow("ugc", 1)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT pillar, COUNT(*)
		FROM content_items
		WHERE user_id = $1
		  AND platform = $2
		  AND status = ANY($3)
		  AND COALESCE(posted_at, scheduled_at) >= $4
		  AND COALESCE(posted_at, scheduled_at) < $5
		GROUP BY pillar
	`)).
		WithArgs(int64(7), "instagram", pq.Array(statuses), start, end).
		WillReturnRows(rows)

	counts, err := repo.CountByPillar(context.Background(), 7, "instagram", start, end, statuses)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"product_showcase": 2, "ugc": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByPillarEmptyWindow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT pillar, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"pillar", "count"}))

	counts, err := repo.CountByPillar(context.Background(), 7, "tiktok",
		time.Now(), time.Now().AddDate(0, 0, 7), []string{"posted"})
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestSetScheduledAt(t *testing.T) {
	slot := time.Date(2026, 1, 13, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "slot free",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE content_items").
					WithArgs(slot, "scheduled", sqlmock.AnyArg(), int64(42)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "slot already taken",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE content_items").
					WithArgs(slot, "scheduled", sqlmock.AnyArg(), int64(42)).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: ErrSlotTaken,
		},
		{
			name: "content missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE content_items").
					WithArgs(slot, "scheduled", sqlmock.AnyArg(), int64(42)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setupMock(mock)

			err := repo.SetScheduledAt(context.Background(), 42, slot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetByIDNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM content_items WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	item, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, item)
}
