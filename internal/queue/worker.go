package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/havenhub/content-api/internal/models"
	"github.com/hibiken/asynq"
)

func (j *Queue) HandlePublishContentTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishContentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.PublishContent(payload.ContentID)
}

func (j *Queue) PublishContent(contentID int64) error {
	ctx := context.Background()

	item, err := j.cr.GetByID(ctx, contentID)
	if err != nil {
		return err
	}
	if item == nil {
		return errors.New("content doesn't exist")
	}

	// Drafts and rejected items never reach the platforms, even if a
	// stale task points at them.
	if item.Status != models.ContentStatusScheduled {
		log.Printf("Skipping publish for ContentID %d with status %s", contentID, item.Status)
		return nil
	}

	accountsSelected, err := j.sa.ListByContentID(ctx, contentID)
	if err != nil {
		return err
	}
	if len(accountsSelected) == 0 {
		return errors.New("no accounts selected for publishing")
	}

	var wg sync.WaitGroup
	var failed bool
	var mu sync.Mutex
	semaphore := make(chan struct{}, 10) // Concurrency limit

	postToPlatform := func(item *models.ContentItem, socialAcc *models.SocialAccount) {
		defer wg.Done()
		defer func() { <-semaphore }()

		var err error
		switch socialAcc.Platform {
		case models.PlatformPinterest:
			err = j.pi.HandlePinterestPost(ctx, item, socialAcc)
		case models.PlatformTiktok:
			err = j.tt.HandleTiktokPost(ctx, item, socialAcc)
		case models.PlatformInstagram:
			err = j.ig.HandleInstagramPost(ctx, item, socialAcc)
		}

		publishHistory := models.PublishHistory{
			UserID:    socialAcc.UserID,
			ContentID: contentID,
			AccountID: socialAcc.ID,
		}
		if err != nil {
			publishHistory.ErrorMessage = err.Error()
			log.Printf("Error posting to %s for ContentID %d: %v", socialAcc.Platform, item.ID, err)
			mu.Lock()
			failed = true
			mu.Unlock()
		} else {
			// A successful publish bumps the slot's score, feeding the
			// ranking the optimal strategy reads.
			postedAt := time.Now()
			if item.ScheduledAt.Valid {
				postedAt = item.ScheduledAt.Time
			}
			slot := models.EngagementSlot{
				Platform:  socialAcc.Platform,
				DayOfWeek: int(postedAt.Weekday()),
				Hour:      postedAt.Hour(),
				Score:     1,
			}
			if err := j.er.Upsert(ctx, &slot); err != nil {
				log.Printf("Error recording engagement slot for ContentID %d: %v", item.ID, err)
			}
		}
		if _, err := j.ph.Create(ctx, &publishHistory); err != nil {
			log.Printf("Error saving publish history for ContentID %d: %v", item.ID, err)
		}
	}

	for _, acc := range accountsSelected {
		socialAcc, err := j.ac.GetByID(ctx, acc.AccountID)
		if err != nil {
			log.Printf("Error retrieving social account for AccountID %d: %v", acc.AccountID, err)
			continue
		}
		if socialAcc == nil {
			log.Printf("Social account for AccountID %d is nil", acc.AccountID)
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go postToPlatform(item, socialAcc)
	}

	wg.Wait()

	if failed {
		if err := j.cr.UpdateStatus(ctx, models.ContentStatusFailed, contentID); err != nil {
			log.Printf("Error marking ContentID %d failed: %v", contentID, err)
		}
	}

	return nil
}
