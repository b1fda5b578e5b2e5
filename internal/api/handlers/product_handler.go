package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/havenhub/content-api/internal/service"
)

type ProductHandler struct {
	s service.ShopifyService
}

func NewProductHandler(service service.ShopifyService) *ProductHandler {
	return &ProductHandler{s: service}
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.s.ListProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(products)
}

func (h *ProductHandler) SyncProducts(c *fiber.Ctx) error {
	synced, err := h.s.SyncProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to sync products",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"synced": synced,
	})
}
