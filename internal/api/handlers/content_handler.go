package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/havenhub/content-api/internal/queue"
	"github.com/havenhub/content-api/internal/service"
	"github.com/havenhub/content-api/internal/transfer"
	"github.com/hibiken/asynq"
)

type ContentHandler struct {
	s           service.ContentService
	AsynqClient *asynq.Client
}

func NewContentHandler(service service.ContentService, asynqClient *asynq.Client) *ContentHandler {
	return &ContentHandler{s: service, AsynqClient: asynqClient}
}

func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	userID := GetUserID(c)
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	cc := transfer.ContentCreation{
		Platform:         c.FormValue("platform"),
		Pillar:           c.FormValue("pillar"),
		ContentType:      c.FormValue("content_type"),
		Caption:          c.FormValue("caption"),
		Title:            c.FormValue("title"),
		ScheduledTime:    c.FormValue("scheduling_time"),
		SelectedAccounts: c.FormValue("selected_accounts"),
		ProductID:        c.FormValue("product_id"),
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files selected",
		})
	}

	contentID, delay, err := h.s.CreateContent(c.Context(), userID, &cc, files)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// Drafts have no scheduled time yet; only scheduled items enqueue.
	if delay < 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Draft saved",
			"id":      contentID,
		})
	}

	err = queue.EnqueueContent(h.AsynqClient, queue.PublishContentPayload{ContentID: contentID}, delay)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling content",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Content scheduled successfully",
		"id":      contentID,
	})
}

func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	userId := GetUserID(c)
	contentId := c.QueryInt("id", 0)

	if contentId != 0 {
		item, err := h.s.ContentInfo(c.Context(), int64(contentId), userId)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get content",
			})
		}

		return c.Status(fiber.StatusOK).JSON(item)
	}

	items, err := h.s.List(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list content",
		})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ContentHandler) RemoveContent(c *fiber.Ctx) error {
	userID := GetUserID(c)
	contentId := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(contentId))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove content",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
