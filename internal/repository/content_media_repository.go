package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/havenhub/content-api/internal/models"
)

type ContentMediaRepository interface {
	Create(ctx context.Context, tx *sql.Tx, cm *models.ContentMedia) error
	GetByContentID(ctx context.Context, contentID int64) (*models.ContentMedia, error)
	ListByContentID(ctx context.Context, contentID int64) ([]*models.ContentMedia, error)
	Remove(ctx context.Context, contentID int64) error
}

type contentMediaRepository struct {
	db *sql.DB
}

func NewContentMediaRepository(db *sql.DB) ContentMediaRepository {
	return &contentMediaRepository{db: db}
}

func (r *contentMediaRepository) Create(ctx context.Context, tx *sql.Tx, cm *models.ContentMedia) error {
	var err error

	query := `
		INSERT INTO content_media (content_id, asset_id, display_order)
		VALUES ($1, $2, $3)
	`
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, cm.ContentID, cm.AssetID, cm.DisplayOrder)
	} else {
		_, err = r.db.ExecContext(ctx, query, cm.ContentID, cm.AssetID, cm.DisplayOrder)
	}

	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

// GetByContentID returns the cover media, display_order 0.
func (r *contentMediaRepository) GetByContentID(ctx context.Context, contentID int64) (*models.ContentMedia, error) {
	query := `
		SELECT content_id, asset_id, display_order
		FROM content_media
		WHERE content_id = $1 AND display_order = 0
	`

	var cm models.ContentMedia
	err := r.db.QueryRowContext(ctx, query, contentID).Scan(&cm.ContentID, &cm.AssetID, &cm.DisplayOrder)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &cm, nil
}

func (r *contentMediaRepository) ListByContentID(ctx context.Context, contentID int64) ([]*models.ContentMedia, error) {
	query := `
		SELECT content_id, asset_id, display_order
		FROM content_media
		WHERE content_id = $1
		ORDER BY display_order
	`

	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var medias []*models.ContentMedia
	for rows.Next() {
		var cm models.ContentMedia
		if err := rows.Scan(&cm.ContentID, &cm.AssetID, &cm.DisplayOrder); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		medias = append(medias, &cm)
	}

	return medias, rows.Err()
}

func (r *contentMediaRepository) Remove(ctx context.Context, contentID int64) error {
	query := `
		DELETE FROM content_media
		WHERE content_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, contentID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
