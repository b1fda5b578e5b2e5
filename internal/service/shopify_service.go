package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
)

const shopifyAPIVersion = "2024-01"

type ShopifyService interface {
	SyncProducts(ctx context.Context) (int, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type shopifyService struct {
	cfg config.Config
	pr  repository.ProductRepository
}

func NewShopifyService(cfg config.Config, pr repository.ProductRepository) ShopifyService {
	return &shopifyService{
		cfg: cfg,
		pr:  pr,
	}
}

// SyncProducts pulls the product catalog from the Shopify Admin API and
// upserts it locally so content can be linked to products without a
// live Shopify call on every request. Returns how many rows were synced.
func (s *shopifyService) SyncProducts(ctx context.Context) (int, error) {
	if s.cfg.ShopifyStoreDomain == "" || s.cfg.ShopifyAccessToken == "" {
		err := errors.New("Shopify configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/products.json", s.cfg.ShopifyStoreDomain, shopifyAPIVersion)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", s.cfg.ShopifyAccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("Shopify products endpoint returned non-200 status", "status", resp.StatusCode)
		return 0, fmt.Errorf("unexpected status code from Shopify: %d", resp.StatusCode)
	}

	var result transfer.ShopifyProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("failed to decode products response: %w", err)
	}

	synced := 0
	for _, p := range result.Products {
		product := models.Product{
			ShopifyID: p.ID,
			Title:     p.Title,
			Handle:    p.Handle,
			ImageURL:  p.Image.Src,
			Status:    p.Status,
			SyncedAt:  time.Now(),
		}
		if len(p.Variants) > 0 {
			product.Price = p.Variants[0].Price
		}

		if err := s.pr.Upsert(ctx, &product); err != nil {
			slog.Info(err.Error())
			return synced, fmt.Errorf("error saving product %d: %w", p.ID, err)
		}
		synced++
	}

	return synced, nil
}

func (s *shopifyService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.pr.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error getting products")
	}
	return products, nil
}
