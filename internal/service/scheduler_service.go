package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/havenhub/content-api/internal/models"
	"github.com/havenhub/content-api/internal/planner"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// maxSlotAttempts bounds how many candidate slots one item may burn
// before it is reported as failed instead of stalling the batch.
const maxSlotAttempts = 5

const defaultSpreadDays = 7

type SchedulerService interface {
	BulkSchedule(ctx context.Context, userID int64, req *transfer.BulkScheduleRequest) (*transfer.BulkScheduleResult, error)
	SlotsForDay(platform string, day time.Weekday) []planner.ScheduleSlot
	TopSlots(ctx context.Context, platform string, limit int) ([]planner.OptimalSlot, error)
}

type schedulerService struct {
	cr  repository.ContentRepository
	er  repository.EngagementRepository
	now func() time.Time
}

func NewSchedulerService(cr repository.ContentRepository, er repository.EngagementRepository) SchedulerService {
	return &schedulerService{
		cr:  cr,
		er:  er,
		now: time.Now,
	}
}

func (s *schedulerService) BulkSchedule(ctx context.Context, userID int64, req *transfer.BulkScheduleRequest) (*transfer.BulkScheduleResult, error) {
	if req == nil || len(req.ContentIDs) == 0 {
		slog.Info(ErrEmptyBatch.Error())
		return nil, ErrEmptyBatch
	}

	switch req.Platform {
	case models.PlatformPinterest, models.PlatformInstagram, models.PlatformTiktok:
	default:
		slog.Info("bulk schedule for unsupported platform", "platform", req.Platform)
		return nil, ErrUnknownPlatform
	}

	next, err := s.slotSequence(ctx, req)
	if err != nil {
		return nil, err
	}

	batchID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("error generating batch id: %w", err)
	}

	result := &transfer.BulkScheduleResult{
		BatchID:   batchID,
		Scheduled: []transfer.ScheduledItem{},
		Errors:    []transfer.ScheduleError{},
	}

	// One bad item never aborts the batch; it is recorded and skipped.
	for _, id := range req.ContentIDs {
		item, err := s.cr.GetByID(ctx, id)
		if err != nil || item == nil || item.UserID != userID {
			if err != nil {
				slog.Info(err.Error())
			}
			result.Errors = append(result.Errors, transfer.ScheduleError{ID: id, Reason: ErrContentNotFound.Error()})
			continue
		}
		if item.Status == models.ContentStatusPosted {
			result.Errors = append(result.Errors, transfer.ScheduleError{ID: id, Reason: ErrAlreadyPublished.Error()})
			continue
		}
		if item.Platform != req.Platform {
			result.Errors = append(result.Errors, transfer.ScheduleError{ID: id, Reason: "content belongs to another platform"})
			continue
		}

		scheduledAt, err := s.placeItem(ctx, id, next)
		if err != nil {
			result.Errors = append(result.Errors, transfer.ScheduleError{ID: id, Reason: err.Error()})
			continue
		}

		result.Scheduled = append(result.Scheduled, transfer.ScheduledItem{ID: id, ScheduledAt: scheduledAt})
		result.Work = append(result.Work, transfer.ScheduledWork{
			Kind:      transfer.WorkKindPublishContent,
			ContentID: id,
			RunAt:     scheduledAt,
		})
	}

	return result, nil
}

// placeItem tries successive candidate slots until one persists. A slot
// already occupied in the database is skipped; anything else fails the
// item immediately.
func (s *schedulerService) placeItem(ctx context.Context, id int64, next func() time.Time) (time.Time, error) {
	for attempt := 0; attempt < maxSlotAttempts; attempt++ {
		at := next()
		err := s.cr.SetScheduledAt(ctx, id, at)
		if err == nil {
			return at, nil
		}
		if errors.Is(err, repository.ErrSlotTaken) {
			continue
		}
		if errors.Is(err, repository.ErrNotFound) {
			return time.Time{}, ErrContentNotFound
		}
		slog.Info(err.Error())
		return time.Time{}, fmt.Errorf("error scheduling content: %w", err)
	}
	return time.Time{}, fmt.Errorf("no free slot after %d attempts", maxSlotAttempts)
}

// slotSequence builds the candidate generator for the request's
// strategy. Every call yields a new candidate, so a taken slot simply
// advances the sequence for the whole batch; the occupied slot is gone
// either way.
func (s *schedulerService) slotSequence(ctx context.Context, req *transfer.BulkScheduleRequest) (func() time.Time, error) {
	switch req.Strategy {

	case transfer.StrategyImmediate:
		base := s.now()
		n := 0
		return func() time.Time {
			t := base.Add(time.Duration(n) * time.Second)
			n++
			return t
		}, nil

	case transfer.StrategySpread:
		days := req.SpreadDays
		if days <= 0 {
			days = defaultSpreadDays
		}
		perDay := req.ItemsPerDay
		if perDay <= 0 {
			perDay = (len(req.ContentIDs) + days - 1) / days
		}

		start, err := s.spreadStart(req)
		if err != nil {
			return nil, err
		}

		day, posInDay := 0, 0
		return func() time.Time {
			t := start.AddDate(0, 0, day).Add(time.Duration(posInDay) * 30 * time.Minute)
			posInDay++
			if posInDay == perDay {
				posInDay = 0
				day++
			}
			return t
		}, nil

	case transfer.StrategyOptimal:
		slots, err := s.rankedSlots(ctx, req.Platform)
		if err != nil {
			return nil, err
		}
		after := s.now()
		n := 0
		return func() time.Time {
			slot := slots[n%len(slots)]
			week := n / len(slots)
			n++
			return planner.OccurrenceAfter(slot.DayOfWeek, slot.Hour, after).AddDate(0, 0, 7*week)
		}, nil
	}

	slog.Info("unknown scheduling strategy", "strategy", req.Strategy)
	return nil, ErrUnknownStrategy
}

func (s *schedulerService) spreadStart(req *transfer.BulkScheduleRequest) (time.Time, error) {
	hour := planner.DefaultHour(req.Platform)
	if req.StartDate == "" {
		tomorrow := s.now().AddDate(0, 0, 1)
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, 0, 0, 0, tomorrow.Location()), nil
	}

	date, err := time.ParseInLocation("2006-01-02", req.StartDate, s.now().Location())
	if err != nil {
		slog.Info(err.Error())
		return time.Time{}, fmt.Errorf("invalid start date format: %w", err)
	}
	return date.Add(time.Duration(hour) * time.Hour), nil
}

// rankedSlots prefers observed engagement history and falls back to the
// hardcoded per-platform ranking when none has been collected yet.
func (s *schedulerService) rankedSlots(ctx context.Context, platform string) ([]planner.OptimalSlot, error) {
	history, err := s.er.ListTopSlots(ctx, platform, maxSlotAttempts)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error loading engagement slots: %w", err)
	}

	if len(history) == 0 {
		slots := planner.DefaultOptimalSlots(platform)
		if len(slots) == 0 {
			return nil, ErrUnknownPlatform
		}
		return slots, nil
	}

	slots := make([]planner.OptimalSlot, len(history))
	for i, h := range history {
		slots[i] = planner.OptimalSlot{DayOfWeek: h.DayOfWeek, Hour: h.Hour, Score: h.Score}
	}
	return slots, nil
}

func (s *schedulerService) SlotsForDay(platform string, day time.Weekday) []planner.ScheduleSlot {
	return planner.DaySlots(platform, day)
}

func (s *schedulerService) TopSlots(ctx context.Context, platform string, limit int) ([]planner.OptimalSlot, error) {
	if limit <= 0 {
		limit = maxSlotAttempts
	}
	history, err := s.er.ListTopSlots(ctx, platform, limit)
	if err != nil {
		return nil, fmt.Errorf("error loading engagement slots: %w", err)
	}
	if len(history) == 0 {
		return planner.DefaultOptimalSlots(platform), nil
	}
	slots := make([]planner.OptimalSlot, len(history))
	for i, h := range history {
		slots[i] = planner.OptimalSlot{DayOfWeek: h.DayOfWeek, Hour: h.Hour, Score: h.Score}
	}
	return slots, nil
}
