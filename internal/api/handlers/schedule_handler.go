package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/havenhub/content-api/internal/queue"
	"github.com/havenhub/content-api/internal/service"
	"github.com/havenhub/content-api/internal/transfer"
	"github.com/hibiken/asynq"
)

type ScheduleHandler struct {
	s           service.SchedulerService
	AsynqClient *asynq.Client
}

func NewScheduleHandler(service service.SchedulerService, asynqClient *asynq.Client) *ScheduleHandler {
	return &ScheduleHandler{s: service, AsynqClient: asynqClient}
}

func (h *ScheduleHandler) BulkSchedule(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.BulkScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.BulkSchedule(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBatch) ||
			errors.Is(err, service.ErrUnknownStrategy) ||
			errors.Is(err, service.ErrUnknownPlatform) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to schedule content",
		})
	}

	// Publishing tasks are enqueued after every slot is settled so a
	// partially failed batch never leaves orphaned delayed tasks.
	for _, work := range result.Work {
		delay := time.Until(work.RunAt)
		if delay < 0 {
			delay = 0
		}
		err := queue.EnqueueContent(h.AsynqClient, queue.PublishContentPayload{ContentID: work.ContentID}, delay)
		if err != nil {
			slog.Info(err.Error())
		}
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ScheduleHandler) ListDaySlots(c *fiber.Ctx) error {
	platform := c.Query("platform")

	day := time.Now().Weekday()
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "date must be formatted as 2006-01-02",
			})
		}
		day = parsed.Weekday()
	}

	slots := h.s.SlotsForDay(platform, day)
	if len(slots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No slots for given platform",
		})
	}

	return c.Status(fiber.StatusOK).JSON(slots)
}

func (h *ScheduleHandler) ListOptimalSlots(c *fiber.Ctx) error {
	platform := c.Query("platform")
	limit := c.QueryInt("limit", 0)

	slots, err := h.s.TopSlots(c.Context(), platform, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list optimal slots",
		})
	}
	if len(slots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No slots for given platform",
		})
	}

	return c.Status(fiber.StatusOK).JSON(slots)
}
