package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
	"github.com/havenhub/content-api/pkg/utils"
)

const (
	pinterestTokenURL    = "https://api.pinterest.com/v5/oauth/token"
	pinterestUserInfoURL = "https://api.pinterest.com/v5/user_account"
	pinterestPinsURL     = "https://api.pinterest.com/v5/pins"
)

type PinterestService interface {
	PinterestCallback(ctx context.Context, code string, userID int64) (err error)
	RefreshPinterestToken(ctx context.Context, userID int64, accessToken, refreshToken string) error
	HandlePinterestPost(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error
}

type pinterestService struct {
	cfg config.Config
	cr  repository.ContentRepository
	sa  repository.SocialAccountRepository
	cm  repository.ContentMediaRepository
	ma  repository.MediaAssetRepository
	pr  repository.ProductRepository
}

func NewPinterestService(
	cfg config.Config,
	cr repository.ContentRepository,
	sa repository.SocialAccountRepository,
	cm repository.ContentMediaRepository,
	ma repository.MediaAssetRepository,
	pr repository.ProductRepository) PinterestService {
	return &pinterestService{
		cfg: cfg,
		cr:  cr,
		sa:  sa,
		cm:  cm,
		ma:  ma,
		pr:  pr,
	}
}

func (s *pinterestService) PinterestCallback(ctx context.Context, code string, userID int64) (err error) {

	if code == "" {
		err = errors.New("code or state is empty")
		slog.Info(err.Error())
		return err
	}

	tokenResponse, err := s.exchangeCodeForToken(code)
	if err != nil {
		return err
	}

	userInfo, err := PinterestAccountInfo(tokenResponse.AccessToken)
	if err != nil {
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(tokenResponse.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefreshToken, err := utils.Encrypt([]byte(tokenResponse.RefreshToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	accountInfo := &models.SocialAccount{
		UserID:          userID,
		Platform:        models.PlatformPinterest,
		AccountID:       userInfo.ID,
		AccountName:     userInfo.BusinessName,
		AccountUsername: userInfo.Username,
		ProfilePicture:  userInfo.ProfileImage,
		AccessToken:     encryptedAccessToken,
		RefreshToken:    encryptedRefreshToken,
		TokenExpiresAt:  GetExpiresAt(tokenResponse.ExpiresIn),
	}

	_, err = s.sa.Create(ctx, nil, accountInfo)
	if err != nil {
		return err
	}

	return nil
}

func (s *pinterestService) exchangeCodeForToken(code string) (*transfer.PinterestTokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", s.cfg.PinterestRedirectURI)

	req, err := http.NewRequest("POST", pinterestTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+s.basicAuth())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("Pinterest token endpoint returned non-200 status")
		return nil, errors.New("Pinterest token endpoint returned non-200 status")
	}

	var tokenResponse transfer.PinterestTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &tokenResponse, nil
}

func (s *pinterestService) basicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(s.cfg.PinterestAppID + ":" + s.cfg.PinterestAppSecret))
}

func PinterestAccountInfo(accessToken string) (*transfer.PinterestUserInfo, error) {
	req, err := http.NewRequest("GET", pinterestUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var userInfo transfer.PinterestUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &userInfo, nil
}

func (s *pinterestService) RefreshPinterestToken(ctx context.Context, userID int64, accessToken, refreshToken string) error {

	decryptedRefreshToken, err := utils.Decrypt(refreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", decryptedRefreshToken)

	req, err := http.NewRequest("POST", pinterestTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+s.basicAuth())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("Pinterest refresh endpoint returned non-200 status")
		return errors.New("Pinterest refresh endpoint returned non-200 status")
	}

	var tokenResponse transfer.PinterestTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Second * time.Duration(tokenResponse.ExpiresIn))

	encryptedAccessToken, err := utils.Encrypt([]byte(tokenResponse.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	// Pinterest doesn't rotate the refresh token on every refresh.
	newRefreshToken := refreshToken
	if tokenResponse.RefreshToken != "" {
		newRefreshToken, err = utils.Encrypt([]byte(tokenResponse.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	socialAccount := models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		RefreshToken:   newRefreshToken,
		TokenExpiresAt: expiresAt,
	}

	err = s.sa.SetToken(ctx, userID, accessToken, &socialAccount)
	if err != nil {
		return err
	}

	return nil
}

func (s *pinterestService) HandlePinterestPost(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error {

	decryptedAccessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	contentMedia, err := s.cm.GetByContentID(ctx, item.ID)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("error getting content media: %w", err)
	}

	if contentMedia == nil {
		return fmt.Errorf("no media found for ContentID %d", item.ID)
	}

	mediaAsset, err := s.ma.GetByID(ctx, contentMedia.AssetID)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("error getting asset info: %w", err)
	}

	if mediaAsset == nil || mediaAsset.FileURL == "" {
		return fmt.Errorf("media asset is missing or incomplete for AssetID %d", contentMedia.AssetID)
	}

	pin := transfer.PinCreateRequest{
		Title:       item.Title,
		Description: item.Caption,
		BoardID:     s.cfg.PinterestBoardID,
		Link:        s.productLink(ctx, item),
		MediaSource: transfer.PinterestMediaSource{
			SourceType: "image_url",
			URL:        mediaAsset.FileURL,
		},
	}

	jsonData, err := json.Marshal(pin)
	if err != nil {
		return fmt.Errorf("error marshalling pin payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", pinterestPinsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+decryptedAccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var errResp transfer.PinterestErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			return fmt.Errorf("error creating pin: %s", errResp.Message)
		}
		return fmt.Errorf("unexpected status code from Pinterest: %d", resp.StatusCode)
	}

	var result transfer.PinCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return err
	}

	if err := s.cr.MarkPosted(ctx, item.ID, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

// productLink resolves the linked Shopify product to its storefront URL
// so the pin drives traffic back to the shop. Missing links are fine.
func (s *pinterestService) productLink(ctx context.Context, item *models.ContentItem) string {
	if !item.ProductID.Valid {
		return ""
	}

	product, err := s.pr.GetByShopifyID(ctx, item.ProductID.Int64)
	if err != nil || product == nil {
		if err != nil {
			slog.Info(err.Error())
		}
		return ""
	}

	return fmt.Sprintf("https://%s/products/%s", s.cfg.ShopifyStoreDomain, product.Handle)
}
