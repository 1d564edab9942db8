package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "shopdesk/internal/log"
	"shopdesk/internal/services"
	"shopdesk/internal/validate"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

// GET /api/v1/customers?q=
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	raw := c.Query("q")
	q := ""
	if strings.TrimSpace(raw) != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid search query"})
		}
	}
	out, err := h.Customers.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customers": out})
}
