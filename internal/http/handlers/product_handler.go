package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/log"
	"shopdesk/internal/services"
	"shopdesk/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products?category=&page=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	catID := c.Query("category")
	if catID != "" {
		var ok bool
		if catID, ok = validate.ID(catID); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
	}
	products, err := h.Catalog.ListAvailable(c.UserContext(), catID, c.QueryInt("page", 1), 50)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}
