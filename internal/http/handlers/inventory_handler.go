package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/checkout"
	"shopdesk/internal/validate"
)

type InventoryHandler struct {
	Registry *checkout.Registry
}

// Check reports the stock level of a product net of what the caller's cart
// already holds.
//
// GET /api/v1/products/:id/availability
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	avail, err := h.Registry.Get(c.Cookies("sid")).Availability(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(avail)
}
