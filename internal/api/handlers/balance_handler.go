package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/havenhub/content-api/internal/planner"
	"github.com/havenhub/content-api/internal/service"
)

type BalanceHandler struct {
	s service.BalanceService
}

func NewBalanceHandler(service service.BalanceService) *BalanceHandler {
	return &BalanceHandler{s: service}
}

// balanceQuery reads the shared platform/period/date query params.
func balanceQuery(c *fiber.Ctx) (string, planner.PeriodType, time.Time, error) {
	platform := c.Query("platform")
	period := planner.PeriodType(c.Query("period", string(planner.PeriodWeek)))

	ref := time.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, ref.Location())
		if err != nil {
			return "", "", time.Time{}, errors.New("date must be formatted as 2006-01-02")
		}
		ref = parsed
	}

	return platform, period, ref, nil
}

func (h *BalanceHandler) GetBalance(c *fiber.Ctx) error {
	userID := GetUserID(c)

	platform, period, ref, err := balanceQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	report, err := h.s.GetBalance(c.Context(), userID, platform, period, ref)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPlatform) || errors.Is(err, planner.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to compute balance",
		})
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

func (h *BalanceHandler) GetRecommendations(c *fiber.Ctx) error {
	userID := GetUserID(c)

	platform, period, ref, err := balanceQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	limit := c.QueryInt("limit", 1)

	resp, err := h.s.GetRecommendations(c.Context(), userID, platform, period, ref, limit)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPlatform) || errors.Is(err, planner.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to compute recommendations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
