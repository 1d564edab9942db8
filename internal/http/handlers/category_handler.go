package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": cats})
}
