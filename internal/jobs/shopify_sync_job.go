package job

import (
	"context"
	"log/slog"

	"github.com/havenhub/content-api/internal/service"
)

type ShopifySyncJob struct {
	sh service.ShopifyService
}

func NewShopifySyncJob(sh service.ShopifyService) *ShopifySyncJob {
	return &ShopifySyncJob{
		sh: sh,
	}
}

func (c *ShopifySyncJob) SyncProducts() {
	ctx := context.Background()

	synced, err := c.sh.SyncProducts(ctx)
	if err != nil {
		slog.Info("Unable to sync Shopify products", "error", err.Error())
		return
	}

	slog.Info("Shopify product sync finished", "synced", synced)
}
