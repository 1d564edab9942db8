package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/cart"
	"shopdesk/internal/checkout"
	applog "shopdesk/internal/log"
	"shopdesk/internal/repos"
	"shopdesk/internal/services"
	"shopdesk/internal/validate"
)

type SaleHandler struct {
	Registry *checkout.Registry
	Sales    *services.SaleService
}

// POST /api/v1/cart/submit
func (h *SaleHandler) Submit(c *fiber.Ctx) error {
	s := h.Registry.Get(c.Cookies("sid"))
	ctx := c.UserContext()
	if u := userOf(c); u != nil {
		ctx = services.WithStaff(ctx, u.ID)
	}

	receipt, err := s.Submit(ctx)
	if err != nil {
		var rej *cart.Rejection
		var se *repos.StockError
		switch {
		case errors.As(err, &rej):
			applog.Info(c, "checkout.rejected", map[string]any{"field": rej.Field, "reason": rej.Reason})
			return fail(c, err)
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			applog.Security(c, "checkout.duplicate_submit", nil)
			return fail(c, err)
		case errors.As(err, &se):
			applog.Info(c, "checkout.stock_shortfall", map[string]any{"product_id": se.ProductID, "available": se.Available})
			return fail(c, err)
		}
		// the cart is kept for a retry
		applog.Error(c, "checkout.submit.fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	applog.Audit(c, "checkout.sale.recorded", map[string]any{
		"sale_id":        receipt.SaleID,
		"total":          receipt.Total.StringFixed(2),
		"items":          receipt.ItemCount,
		"payment_method": receipt.PaymentMethod,
	})
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// GET /api/v1/sales/:id
func (h *SaleHandler) View(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := validate.ID(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sale not found"})
	}
	r, err := h.Sales.Get(c.UserContext(), id)
	if errors.Is(err, repos.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "sale not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(r)
}
