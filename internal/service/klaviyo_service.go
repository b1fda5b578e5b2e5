package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/transfer"
)

const (
	klaviyoEventsURL   = "https://a.klaviyo.com/api/events/"
	klaviyoAPIRevision = "2024-10-15"
)

type KlaviyoService interface {
	TrackEvent(ctx context.Context, metricName, profileEmail string, properties map[string]interface{}) error
}

type klaviyoService struct {
	cfg config.Config
}

func NewKlaviyoService(cfg config.Config) KlaviyoService {
	return &klaviyoService{
		cfg: cfg,
	}
}

// TrackEvent records a metric against a Klaviyo profile. The weekly
// digest job uses it to push balance summaries into email flows.
func (s *klaviyoService) TrackEvent(ctx context.Context, metricName, profileEmail string, properties map[string]interface{}) error {
	if s.cfg.KlaviyoAPIKey == "" {
		err := errors.New("Klaviyo configuration is incomplete")
		slog.Info(err.Error())
		return err
	}

	event := transfer.KlaviyoEventRequest{
		Data: transfer.KlaviyoEventData{
			Type: "event",
			Attributes: transfer.KlaviyoEventAttributes{
				Properties: properties,
				Metric: transfer.KlaviyoMetric{
					Data: transfer.KlaviyoMetricData{
						Type:       "metric",
						Attributes: map[string]string{"name": metricName},
					},
				},
				Profile: transfer.KlaviyoProfile{
					Data: transfer.KlaviyoProfileData{
						Type:       "profile",
						Attributes: map[string]string{"email": profileEmail},
					},
				},
			},
		},
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshalling event payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", klaviyoEventsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Klaviyo-API-Key "+s.cfg.KlaviyoAPIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("revision", klaviyoAPIRevision)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		slog.Info("Klaviyo events endpoint returned unexpected status", "status", resp.StatusCode)
		return fmt.Errorf("unexpected status code from Klaviyo: %d", resp.StatusCode)
	}

	return nil
}
