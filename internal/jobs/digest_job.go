package job

import (
	"context"
	"log/slog"
	"time"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/planner"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/service"
)

type DigestJob struct {
	cfg config.Config
	u   repository.UserRepository
	bs  service.BalanceService
	kl  service.KlaviyoService
}

func NewDigestJob(
	cfg config.Config,
	u repository.UserRepository,
	bs service.BalanceService,
	kl service.KlaviyoService) *DigestJob {
	return &DigestJob{
		cfg: cfg,
		u:   u,
		bs:  bs,
		kl:  kl,
	}
}

// SendWeeklyDigest pushes the current week's pillar balance for every
// platform into Klaviyo so it can land in the Monday planning email.
func (c *DigestJob) SendWeeklyDigest() {
	ctx := context.Background()

	if c.cfg.DigestRecipientProfile == "" {
		slog.Info("digest recipient is not configured, skipping")
		return
	}

	user, isExist, err := c.u.GetByEmail(ctx, c.cfg.DigestRecipientProfile)
	if err != nil || !isExist {
		if err != nil {
			slog.Info(err.Error())
		}
		slog.Info("digest recipient has no account, skipping")
		return
	}

	platforms := []string{models.PlatformPinterest, models.PlatformInstagram, models.PlatformTiktok}
	summary := make(map[string]interface{}, len(platforms))

	for _, platform := range platforms {
		report, err := c.bs.GetBalance(ctx, user.ID, platform, planner.PeriodWeek, time.Now())
		if err != nil {
			slog.Info("Unable to compute balance for digest", "platform", platform, "error", err.Error())
			continue
		}

		pillars := make([]map[string]interface{}, 0, len(report.Balances))
		for _, b := range report.Balances {
			pillars = append(pillars, map[string]interface{}{
				"pillar":       b.Pillar,
				"target_count": b.TargetCount,
				"actual_count": b.ActualCount,
				"deficit":      b.Deficit,
			})
		}

		summary[platform] = map[string]interface{}{
			"total_volume": report.TotalVolume,
			"balanced":     len(report.NeedsContent) == 0,
			"pillars":      pillars,
		}
	}

	if len(summary) == 0 {
		return
	}

	err = c.kl.TrackEvent(ctx, "Weekly Pillar Balance Digest", c.cfg.DigestRecipientProfile, summary)
	if err != nil {
		slog.Info("Unable to send digest event to Klaviyo", "error", err.Error())
		return
	}

	slog.Info("weekly digest sent", "platforms", len(summary))
}
