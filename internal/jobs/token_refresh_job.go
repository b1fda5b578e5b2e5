package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/service"
)

type TokenRefreshJob struct {
	sr repository.SocialAccountRepository
	pi service.PinterestService
	tt service.TiktokService
	ig service.InstagramService
}

func NewTokenRefreshJob(
	sr repository.SocialAccountRepository,
	pi service.PinterestService,
	tt service.TiktokService,
	ig service.InstagramService) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr: sr,
		pi: pi,
		tt: tt,
		ig: ig,
	}
}

// RefreshTokens renews every connected account whose token expires in
// the next half hour.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.sr.ListExpiringBetween(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			switch acc.Platform {
			case models.PlatformPinterest:
				err := c.pi.RefreshPinterestToken(ctx, acc.UserID, acc.AccessToken, acc.RefreshToken)
				if err != nil {
					slog.Info("Unable to refresh tokens for Pinterest")
				}

			case models.PlatformInstagram:
				err := c.ig.RefreshInstagramToken(ctx, acc.UserID, acc.RefreshToken)
				if err != nil {
					slog.Info("Unable to refresh tokens for Instagram")
				}

			case models.PlatformTiktok:
				err := c.tt.RefreshTiktokToken(ctx, acc.UserID, acc.AccessToken, acc.RefreshToken)
				if err != nil {
					slog.Info("Unable to refresh tokens for TikTok")
				}
			}
		}(acc)
	}

	wg.Wait()
}
