package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/havenhub/content-api/internal/models"
	"github.com/lib/pq"
)

type ContentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.ContentItem, error)
	Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error)
	CountByPillar(ctx context.Context, userID int64, platform string, start, end time.Time, statuses []string) (map[string]int, error)
	SetScheduledAt(ctx context.Context, id int64, scheduledAt time.Time) error
	UpdateStatus(ctx context.Context, status string, id int64) error
	MarkPosted(ctx context.Context, id int64, postedAt time.Time) error
	CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, user_id, platform, pillar, content_type, caption, title, product_id, scheduled_at, posted_at, status, created_at, updated_at`

func scanContent(row interface{ Scan(...interface{}) error }) (*models.ContentItem, error) {
	var item models.ContentItem
	err := row.Scan(&item.ID, &item.UserID, &item.Platform, &item.Pillar, &item.ContentType,
		&item.Caption, &item.Title, &item.ProductID, &item.ScheduledAt, &item.PostedAt,
		&item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) Create(ctx context.Context, tx *sql.Tx, item *models.ContentItem) (int64, error) {
	query := `
		INSERT INTO content_items (user_id, platform, pillar, content_type, caption, title, product_id, scheduled_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, item.UserID, item.Platform, item.Pillar, item.ContentType,
			item.Caption, item.Title, item.ProductID, item.ScheduledAt, item.Status).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, item.UserID, item.Platform, item.Pillar, item.ContentType,
			item.Caption, item.Title, item.ProductID, item.ScheduledAt, item.Status).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE id = $1`

	item, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return item, nil
}

func (r *contentRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountByPillar aggregates how many items of each pillar fall inside
// [start, end) for the platform. Scheduled items are ranged on
// scheduled_at, posted items on posted_at, so a pin that was scheduled
// last week but published this week counts in the week it went out.
func (r *contentRepository) CountByPillar(ctx context.Context, userID int64, platform string, start, end time.Time, statuses []string) (map[string]int, error) {
	query := `
		SELECT pillar, COUNT(*)
		FROM content_items
		WHERE user_id = $1
		  AND platform = $2
		  AND status = ANY($3)
		  AND COALESCE(posted_at, scheduled_at) >= $4
		  AND COALESCE(posted_at, scheduled_at) < $5
		GROUP BY pillar
	`

	rows, err := r.db.QueryContext(ctx, query, userID, platform, pq.Array(statuses), start, end)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var pillar string
		var count int
		if err := rows.Scan(&pillar, &count); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		counts[pillar] = count
	}
	return counts, rows.Err()
}

// SetScheduledAt is the write the slot-uniqueness guard lives on: the
// content_items table carries a unique index over
// (user_id, platform, scheduled_at), so a double-booked slot comes back
// as ErrSlotTaken instead of silently landing two posts together.
func (r *contentRepository) SetScheduledAt(ctx context.Context, id int64, scheduledAt time.Time) error {
	query := `
		UPDATE content_items
		SET scheduled_at = $1,
			status = $2,
			updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, scheduledAt, models.ContentStatusScheduled, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contentRepository) UpdateStatus(ctx context.Context, status string, id int64) error {
	query := `
		UPDATE content_items
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	query := `
		UPDATE content_items
		SET status = $1,
			posted_at = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.ContentStatusPosted, postedAt, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentRepository) CheckByUserID(ctx context.Context, contentID, userID int64) (bool, error) {
	query := "SELECT 1 FROM content_items WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, contentID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *contentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
