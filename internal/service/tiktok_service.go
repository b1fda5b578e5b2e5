package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
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

const tiktokTokenURL = "https://open.tiktokapis.com/v2/oauth/token/"

type TiktokService interface {
	TiktokCallback(ctx context.Context, code string, userID int64) (err error)
	RefreshTiktokToken(ctx context.Context, userID int64, accessToken, refreshToken string) error
	HandleTiktokPost(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error
}

type tiktokService struct {
	cfg config.Config
	cr  repository.ContentRepository
	sa  repository.SocialAccountRepository
	cm  repository.ContentMediaRepository
	ma  repository.MediaAssetRepository
}

func NewTiktokService(
	cfg config.Config,
	cr repository.ContentRepository,
	sa repository.SocialAccountRepository,
	cm repository.ContentMediaRepository,
	ma repository.MediaAssetRepository) TiktokService {
	return &tiktokService{
		cfg: cfg,
		cr:  cr,
		sa:  sa,
		cm:  cm,
		ma:  ma,
	}
}

func (s *tiktokService) TiktokCallback(ctx context.Context, code string, userID int64) (err error) {

	if code == "" {
		err = errors.New("code or state is empty")
		slog.Info(err.Error())
		return err
	}

	tokenResponse, err := s.exchangeCodeForToken(code)
	if err != nil {
		return err
	}

	userInfo, err := TiktokUserInfo(tokenResponse.AccessToken)
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
		Platform:        models.PlatformTiktok,
		AccountID:       userInfo.Data.User.OpenID,
		AccountName:     userInfo.Data.User.DisplayName,
		AccountUsername: userInfo.Data.User.Username,
		ProfilePicture:  userInfo.Data.User.AvatarURL,
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

func (s *tiktokService) exchangeCodeForToken(code string) (*transfer.TiktokTokenResponse, error) {
	data := url.Values{}
	data.Add("client_key", s.cfg.TiktokClientKey)
	data.Add("client_secret", s.cfg.TiktokClientSecret)
	data.Add("scopes", "user.info.basic,user.info.profile,video.publish,video.upload")
	data.Add("code", code)
	data.Add("grant_type", "authorization_code")
	data.Add("redirect_uri", s.cfg.TiktokRedirectURI)

	resp, err := http.Post(
		tiktokTokenURL,
		"application/x-www-form-urlencoded",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("TikTok token endpoint returned non-200 status")
		return nil, errors.New("TikTok token endpoint returned non-200 status")
	}

	var tokenResponse transfer.TiktokTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &tokenResponse, nil
}

func TiktokUserInfo(accessToken string) (*transfer.TiktokUserResponse, error) {
	url := "https://open.tiktokapis.com/v2/user/info/?fields=open_id,avatar_url,display_name,username"

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		log.Println("Error creating request:", err)
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var result transfer.TiktokUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &result, nil
}

func (s *tiktokService) RefreshTiktokToken(ctx context.Context, userID int64, accessToken, refreshToken string) error {

	decryptedRefreshToken, err := utils.Decrypt(refreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	data := url.Values{}
	data.Set("client_key", s.cfg.TiktokClientKey)
	data.Set("client_secret", s.cfg.TiktokClientSecret)
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", decryptedRefreshToken)

	req, err := http.NewRequest("POST", tiktokTokenURL, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Info("TikTok refresh endpoint returned non-200 status")
		return errors.New("TikTok refresh endpoint returned non-200 status")
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	var tokenResponse transfer.TiktokTokenResponse
	err = json.Unmarshal(bodyBytes, &tokenResponse)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Second * time.Duration(tokenResponse.ExpiresIn))

	encryptedAccessToken, err := utils.Encrypt([]byte(tokenResponse.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefreshToken, err := utils.Encrypt([]byte(tokenResponse.RefreshToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	socialAccount := models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedRefreshToken,
		TokenExpiresAt: expiresAt,
	}

	err = s.sa.SetToken(ctx, userID, accessToken, &socialAccount)
	if err != nil {
		return err
	}

	return nil
}

func (s *tiktokService) HandleTiktokPost(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error {
	var err error
	switch item.ContentType {

	case "photo":
		err = s.PostTiktokPhotos(ctx, item, acc)
		if err != nil {
			return err
		}
	default:
		err = s.PostTiktokVideo(ctx, item, acc)
		if err != nil {
			return err
		}
	}

	if err := s.cr.MarkPosted(ctx, item.ID, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return nil
}

func (s *tiktokService) PostTiktokVideo(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error {

	decryptedAccessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	contentMedia, err := s.cm.GetByContentID(ctx, item.ID)
	if err != nil {
		log.Printf("Error getting content media: %v", err)
		return err
	}

	if contentMedia == nil {
		return fmt.Errorf("no media found for ContentID %d", item.ID)
	}

	videoInfo, err := s.ma.GetByID(ctx, contentMedia.AssetID)
	if err != nil {
		log.Printf("Error getting asset info: %v", err)
		return err
	}

	if videoInfo == nil || videoInfo.FileURL == "" {
		return fmt.Errorf("media asset is missing or incomplete for AssetID %d", contentMedia.AssetID)
	}

	postInfo := transfer.TiktokVideoPostInfo{
		Title:                 item.Caption,
		PrivacyLevel:          "PUBLIC_TO_EVERYONE",
		DisableDuet:           false,
		DisableComment:        false,
		DisableStitch:         false,
		VideoCoverTimestampMs: 1000,
	}

	sourceInfo := transfer.TiktokVideoSourceInfo{
		Source:   "PULL_FROM_URL",
		VideoURL: videoInfo.FileURL,
	}

	videoUploadRequest := transfer.TiktokVideoUploadRequest{
		PostInfo:   postInfo,
		SourceInfo: sourceInfo,
	}

	jsonData, err := json.Marshal(videoUploadRequest)
	if err != nil {
		log.Println("Error marshalling data:", err)
		return err
	}

	uploadURL := "https://open.tiktokapis.com/v2/post/publish/video/init/"
	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Println("Error creating request:", err)
		return err
	}
	req.Header.Set("Authorization", "Bearer "+decryptedAccessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Println("Error uploading video:", err)
		return err
	}
	defer resp.Body.Close()

	var result transfer.TiktokUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Println(err.Error())
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error posting video on tiktok: %s", result.Error.Message)
	}

	log.Printf("Tiktok Publish Data: %v", result)

	return nil
}

func (s *tiktokService) PostTiktokPhotos(ctx context.Context, item *models.ContentItem, acc *models.SocialAccount) error {
	decryptedAccessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	contentMedias, err := s.cm.ListByContentID(ctx, item.ID)
	if err != nil {
		return err
	}

	if len(contentMedias) == 0 {
		return fmt.Errorf("no media found for ContentID %d", item.ID)
	}

	photos := make([]string, 0, len(contentMedias))

	for _, contentMedia := range contentMedias {
		assetInfo, err := s.ma.GetByID(ctx, contentMedia.AssetID)
		if err != nil {
			return err
		}
		if assetInfo == nil || assetInfo.FileURL == "" {
			return fmt.Errorf("media asset is missing or incomplete for AssetID %d", contentMedia.AssetID)
		}
		photos = append(photos, assetInfo.FileURL)
	}

	postInfo := transfer.TiktokPhotoPostInfo{
		Title:              item.Title,
		Description:        item.Caption,
		PrivacyLevel:       "PUBLIC_TO_EVERYONE",
		AutoAddMusic:       true,
		DisableComment:     false,
		BrandContentToggle: false,
	}

	sourceInfo := transfer.TiktokPhotoSourceInfo{
		Source:          "PULL_FROM_URL",
		PhotoCoverIndex: 0,
		PhotoImages:     photos,
	}

	photoUploadRequest := transfer.TiktokPhotoUploadRequest{
		PostInfo:   postInfo,
		SourceInfo: sourceInfo,
		PostMode:   "DIRECT_POST",
		MediaType:  "PHOTO",
	}

	jsonData, err := json.Marshal(photoUploadRequest)
	if err != nil {
		log.Println("Error marshalling data:", err)
		return err
	}

	uploadURL := "https://open.tiktokapis.com/v2/post/publish/content/init/"
	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Println("Error creating request:", err)
		return err
	}
	req.Header.Set("Authorization", "Bearer "+decryptedAccessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Println("Error uploading photos:", err)
		return err
	}
	defer resp.Body.Close()

	var result transfer.TiktokUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Println(err.Error())
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error posting photos on tiktok: %s", result.Error.Message)
	}

	log.Printf("Tiktok Publish Data: %v", result)

	return nil
}

func RevokeTiktokAccess(openID, accessToken string) error {
	urlRevoke := "https://open-api.tiktok.com/oauth/revoke/"
	params := url.Values{}
	params.Add("open_id", openID)
	params.Add("access_token", accessToken)

	req, err := http.NewRequest("POST", urlRevoke, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to revoke token, status code: %d", resp.StatusCode)
	}
	return nil
}
