package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type ContentService interface {
	CreateContent(ctx context.Context, userID int64, cc *transfer.ContentCreation, files []*multipart.FileHeader) (int64, time.Duration, error)
	List(ctx context.Context, userID int64) ([]*models.ContentItem, error)
	ContentInfo(ctx context.Context, contentID, userID int64) (*models.ContentItem, error)
	Remove(ctx context.Context, userID, contentID int64) error
}

type contentService struct {
	cfg config.Config
	db  *sql.DB
	cr  repository.ContentRepository
	sa  repository.SelectedAccountRepository
	ac  repository.SocialAccountRepository
	ma  repository.MediaAssetRepository
	cm  repository.ContentMediaRepository
	r2  R2Service
}

func NewContentService(
	cfg config.Config,
	db *sql.DB,
	cr repository.ContentRepository,
	sa repository.SelectedAccountRepository,
	ma repository.MediaAssetRepository,
	ac repository.SocialAccountRepository,
	cm repository.ContentMediaRepository,
	r2 R2Service) ContentService {
	return &contentService{
		cfg: cfg,
		db:  db,
		cr:  cr,
		sa:  sa,
		ac:  ac,
		ma:  ma,
		cm:  cm,
		r2:  r2,
	}
}

func (s *contentService) CreateContent(ctx context.Context, userID int64, cc *transfer.ContentCreation, files []*multipart.FileHeader) (int64, time.Duration, error) {
	if cc == nil {
		err := errors.New("content creation data is nil")
		slog.Error(err.Error())
		return 0, 0, err
	}
	switch cc.Platform {
	case models.PlatformPinterest, models.PlatformInstagram, models.PlatformTiktok:
	default:
		slog.Info("content for unsupported platform", "platform", cc.Platform)
		return 0, 0, ErrUnknownPlatform
	}
	if cc.Pillar == "" {
		err := errors.New("pillar cannot be empty")
		slog.Info(err.Error())
		return 0, 0, err
	}
	if cc.Caption == "" {
		err := errors.New("caption cannot be empty")
		slog.Info(err.Error())
		return 0, 0, err
	}

	// Missing scheduled time means the item starts life as a draft and
	// only enters the calendar through the bulk scheduler later.
	var scheduledAt sql.NullTime
	status := models.ContentStatusDraft
	if cc.ScheduledTime != "" {
		scheduledTime, err := time.Parse("2006-01-02T15:04", cc.ScheduledTime)
		if err != nil {
			err = fmt.Errorf("invalid scheduled time format: %w", err)
			slog.Error(err.Error())
			return 0, 0, err
		}
		scheduledAt = sql.NullTime{Time: scheduledTime, Valid: true}
		status = models.ContentStatusScheduled
	}

	var selectedAccounts []int
	if err := json.Unmarshal([]byte(cc.SelectedAccounts), &selectedAccounts); err != nil {
		err = fmt.Errorf("invalid selected accounts format: %w", err)
		slog.Error(err.Error())
		return 0, 0, err
	}
	if len(selectedAccounts) == 0 {
		err := errors.New("no social accounts selected")
		slog.Error(err.Error())
		return 0, 0, err
	}

	if len(files) == 0 {
		err := errors.New("no files provided for the content")
		slog.Error(err.Error())
		return 0, 0, err
	}

	var productID sql.NullInt64
	if cc.ProductID != "" {
		pid, err := strconv.ParseInt(cc.ProductID, 10, 64)
		if err != nil {
			err = fmt.Errorf("invalid product id: %w", err)
			slog.Info(err.Error())
			return 0, 0, err
		}
		productID = sql.NullInt64{Int64: pid, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	item := models.ContentItem{
		UserID:      userID,
		Platform:    cc.Platform,
		Pillar:      cc.Pillar,
		ContentType: contentType(cc, len(files)),
		Caption:     cc.Caption,
		Title:       cc.Title,
		ProductID:   productID,
		ScheduledAt: scheduledAt,
		Status:      status,
	}

	contentID, err := s.cr.Create(ctx, tx, &item)
	if err != nil {
		return 0, 0, fmt.Errorf("error creating content: %w", err)
	}

	if err := s.saveSelectedAccounts(ctx, tx, userID, contentID, selectedAccounts); err != nil {
		return 0, 0, fmt.Errorf("error processing selected accounts: %w", err)
	}

	if err := s.processFiles(ctx, tx, userID, contentID, files); err != nil {
		return 0, 0, fmt.Errorf("error processing files: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	delay := time.Duration(-1)
	if scheduledAt.Valid {
		delay = time.Until(scheduledAt.Time)
		if delay < 0 {
			delay = 0
		}
	}

	return contentID, delay, nil
}

// contentType falls back to the platform's default format when the
// client doesn't name one.
func contentType(cc *transfer.ContentCreation, fileCount int) string {
	if cc.ContentType != "" {
		return cc.ContentType
	}
	switch cc.Platform {
	case models.PlatformInstagram:
		if fileCount > 1 {
			return "carousel"
		}
		return "image"
	case models.PlatformTiktok:
		if fileCount > 1 {
			return "photo"
		}
		return "video"
	default:
		return "pin"
	}
}

func (s *contentService) saveSelectedAccounts(ctx context.Context, tx *sql.Tx, userID, contentID int64, accounts []int) error {
	for _, accountID := range accounts {
		exists, err := s.ac.CheckByUserID(ctx, int64(accountID), userID)
		if err != nil {
			return fmt.Errorf("error checking social account %d: %w", accountID, err)
		}
		if !exists {
			return fmt.Errorf("social account %d does not exist", accountID)
		}

		account := models.SelectedAccount{
			ContentID: contentID,
			AccountID: int64(accountID),
		}
		if err := s.sa.Create(ctx, tx, &account); err != nil {
			return fmt.Errorf("error saving selected account %d: %w", accountID, err)
		}
	}
	return nil
}

func (s *contentService) processFiles(ctx context.Context, tx *sql.Tx, userID, contentID int64, files []*multipart.FileHeader) error {
	allowedTypes := map[string]struct{}{
		"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
	}

	for i, file := range files {
		fileContent, err := file.Open()
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
		defer fileContent.Close()

		fileBytes, err := io.ReadAll(fileContent)
		if err != nil {
			return fmt.Errorf("error reading file content: %w", err)
		}

		fileType, err := filetype.Match(fileBytes)
		if err != nil || fileType == types.Unknown {
			return fmt.Errorf("unsupported file type: %w", err)
		}
		if _, ok := allowedTypes[fileType.Extension]; !ok {
			return fmt.Errorf("file type %s is not allowed", fileType.Extension)
		}

		assetID, err := s.saveFile(ctx, tx, userID, fileType.MIME.Value, int64(len(fileBytes)), fileBytes)
		if err != nil {
			return fmt.Errorf("error uploading file: %w", err)
		}

		contentMedia := models.ContentMedia{
			ContentID:    contentID,
			AssetID:      assetID,
			DisplayOrder: i,
		}
		if err := s.cm.Create(ctx, tx, &contentMedia); err != nil {
			return fmt.Errorf("error saving media file: %w", err)
		}
	}
	return nil
}

func (s *contentService) saveFile(ctx context.Context, tx *sql.Tx, userID int64, fileType string, fileSize int64, file []byte) (int64, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	err = s.r2.UploadToR2(ctx, id, file, fileType)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	ma := models.MediaAsset{
		UserID:   userID,
		FileName: id,
		FileType: fileType,
		FileSize: fileSize,
		FileURL:  fmt.Sprintf("%s/%s", s.cfg.R2.PublicURL, id),
	}

	assetID, err := s.ma.Create(ctx, tx, &ma)
	if err != nil {
		return 0, err
	}

	return assetID, nil
}

func (s *contentService) ContentInfo(ctx context.Context, contentID, userID int64) (*models.ContentItem, error) {
	var err error

	if userID == 0 {
		err = errors.New("User is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	if contentID == 0 {
		err = errors.New("content id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.cr.CheckByUserID(ctx, contentID, userID)
	if err != nil {
		return nil, err
	}

	if !isValid {
		slog.Info(ErrContentNotFound.Error())
		return nil, ErrContentNotFound
	}

	item, err := s.cr.GetByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("Error getting content info")
	}

	return item, nil
}

func (s *contentService) List(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	items, err := s.cr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting content list")
	}
	return items, nil
}

func (s *contentService) Remove(ctx context.Context, userID, contentID int64) error {
	var err error

	if userID == 0 {
		err = errors.New("User is not valid")
		slog.Info(err.Error())
		return err
	}

	if contentID == 0 {
		err = errors.New("content_id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.cr.CheckByUserID(ctx, contentID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		slog.Info(ErrContentNotFound.Error())
		return ErrContentNotFound
	}

	err = s.cr.Remove(ctx, contentID)
	if err != nil {
		return fmt.Errorf("Error removing content")
	}

	return nil
}
