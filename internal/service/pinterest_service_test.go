package service

import (
	"context"
	"database/sql"
	"testing"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type fakeContentMediaRepo struct {
	byContent map[int64]*models.ContentMedia
}

func (r *fakeContentMediaRepo) Create(ctx context.Context, tx *sql.Tx, cm *models.ContentMedia) error {
	return nil
}

func (r *fakeContentMediaRepo) GetByContentID(ctx context.Context, contentID int64) (*models.ContentMedia, error) {
	return r.byContent[contentID], nil
}

func (r *fakeContentMediaRepo) ListByContentID(ctx context.Context, contentID int64) ([]*models.ContentMedia, error) {
	if cm, ok := r.byContent[contentID]; ok {
		return []*models.ContentMedia{cm}, nil
	}
	return nil, nil
}

func (r *fakeContentMediaRepo) Remove(ctx context.Context, contentID int64) error {
	return nil
}

type fakeMediaAssetRepo struct {
	assets map[int64]*models.MediaAsset
}

func (r *fakeMediaAssetRepo) Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (int64, error) {
	return ma.ID, nil
}

func (r *fakeMediaAssetRepo) GetByID(ctx context.Context, id int64) (*models.MediaAsset, error) {
	return r.assets[id], nil
}

func (r *fakeMediaAssetRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

func testAccount(t *testing.T, platform string) *models.SocialAccount {
	t.Helper()

	token, err := utils.Encrypt([]byte("access-token"), []byte(testSecretKey))
	require.NoError(t, err)

	return &models.SocialAccount{
		ID:          1,
		UserID:      1,
		Platform:    platform,
		AccessToken: token,
	}
}

func TestHandlePinterestPostWithoutMedia(t *testing.T) {
	svc := &pinterestService{
		cfg: config.Config{SecretKey: testSecretKey},
		cm:  &fakeContentMediaRepo{},
		ma:  &fakeMediaAssetRepo{},
	}

	item := &models.ContentItem{
		ID:       7,
		UserID:   1,
		Platform: models.PlatformPinterest,
		Pillar:   "product_showcase",
		Status:   models.ContentStatusScheduled,
	}

	err := svc.HandlePinterestPost(context.Background(), item, testAccount(t, models.PlatformPinterest))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no media found")
}

func TestHandlePinterestPostWithMissingAsset(t *testing.T) {
	svc := &pinterestService{
		cfg: config.Config{SecretKey: testSecretKey},
		cm: &fakeContentMediaRepo{byContent: map[int64]*models.ContentMedia{
			7: {ContentID: 7, AssetID: 42},
		}},
		ma: &fakeMediaAssetRepo{},
	}

	item := &models.ContentItem{
		ID:       7,
		UserID:   1,
		Platform: models.PlatformPinterest,
		Pillar:   "product_showcase",
		Status:   models.ContentStatusScheduled,
	}

	err := svc.HandlePinterestPost(context.Background(), item, testAccount(t, models.PlatformPinterest))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing or incomplete")
}
