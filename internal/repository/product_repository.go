package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/havenhub/content-api/internal/models"
)

type ProductRepository interface {
	Upsert(ctx context.Context, p *models.Product) error
	List(ctx context.Context) ([]*models.Product, error)
	GetByShopifyID(ctx context.Context, shopifyID int64) (*models.Product, error)
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Upsert(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (shopify_id, title, handle, image_url, price, status, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (shopify_id)
		DO UPDATE SET title = EXCLUDED.title,
			handle = EXCLUDED.handle,
			image_url = EXCLUDED.image_url,
			price = EXCLUDED.price,
			status = EXCLUDED.status,
			synced_at = EXCLUDED.synced_at
	`
	_, err := r.db.ExecContext(ctx, query, p.ShopifyID, p.Title, p.Handle, p.ImageURL, p.Price, p.Status, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT id, shopify_id, title, handle, image_url, price, status, synced_at FROM products ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.ShopifyID, &p.Title, &p.Handle, &p.ImageURL, &p.Price, &p.Status, &p.SyncedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *productRepository) GetByShopifyID(ctx context.Context, shopifyID int64) (*models.Product, error) {
	query := `SELECT id, shopify_id, title, handle, image_url, price, status, synced_at FROM products WHERE shopify_id = $1`

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, shopifyID).Scan(
		&p.ID, &p.ShopifyID, &p.Title, &p.Handle, &p.ImageURL, &p.Price, &p.Status, &p.SyncedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &p, nil
}
