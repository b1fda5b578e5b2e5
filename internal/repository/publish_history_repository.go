package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/havenhub/content-api/internal/models"
)

type PublishHistoryRepository interface {
	Create(ctx context.Context, ph *models.PublishHistory) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.PublishHistory, error)
}

type publishHistoryRepository struct {
	db *sql.DB
}

func NewPublishHistoryRepository(db *sql.DB) PublishHistoryRepository {
	return &publishHistoryRepository{db: db}
}

func (r *publishHistoryRepository) Create(ctx context.Context, ph *models.PublishHistory) (int64, error) {
	query := `
		INSERT INTO publish_history (user_id, content_id, account_id, error_message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ph.UserID, ph.ContentID, ph.AccountID, ph.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishHistoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.PublishHistory, error) {
	query := `SELECT id, user_id, content_id, account_id, error_message, created_at FROM publish_history WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.PublishHistory
	for rows.Next() {
		var ph models.PublishHistory
		err := rows.Scan(&ph.ID, &ph.UserID, &ph.ContentID, &ph.AccountID, &ph.ErrorMessage, &ph.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, &ph)
	}
	return entries, rows.Err()
}
