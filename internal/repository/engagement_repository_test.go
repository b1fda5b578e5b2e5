package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/havenhub/content-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockEngagementRepo(t *testing.T) (EngagementRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEngagementRepository(db), mock
}

func TestEngagementUpsertAccumulatesScore(t *testing.T) {
	repo, mock := newMockEngagementRepo(t)

	mock.ExpectExec(`INSERT INTO engagement_slots(.|\n)+score = engagement_slots\.score \+ EXCLUDED\.score`).
		WithArgs("pinterest", 6, 20, float64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &models.EngagementSlot{
		Platform:  "pinterest",
		DayOfWeek: 6,
		Hour:      20,
		Score:     1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
