package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "shopdesk/internal/log"
	"shopdesk/internal/repos"
	"shopdesk/internal/services"
	"shopdesk/internal/validate"
)

type AdminHandler struct {
	Inv   *services.InventoryService
	Sales *services.SaleService
}

type stockRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Qty       *int   `json:"qty" validate:"required,gte=0"`
	Available *bool  `json:"is_available"`
}

// GET /api/v1/admin/stock
func (h *AdminHandler) Stock(c *fiber.Ctx) error {
	rows, err := h.Inv.List()
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"stock": rows})
}

// POST /api/v1/admin/stock
func (h *AdminHandler) UpdateStock(c *fiber.Ctx) error {
	var req stockRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if err := h.Inv.SetStock(pid, *req.Qty); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"product": pid, "qty": *req.Qty})
		return err
	}
	fields := map[string]any{"product": pid, "qty": *req.Qty}
	if req.Available != nil {
		if err := h.Inv.SetAvailable(pid, *req.Available); err != nil {
			applog.Error(c, "admin.inventory.save.fail", err, fields)
			return err
		}
		fields["is_available"] = *req.Available
	}
	applog.Audit(c, "admin.inventory.save", fields)

	avail, err := h.Inv.CheckAvailability(pid)
	if err != nil {
		return err
	}
	return c.JSON(avail)
}

// GET /api/v1/admin/sales
func (h *AdminHandler) LatestSales(c *fiber.Ctx) error {
	rows, err := h.Sales.Latest(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		applog.Error(c, "admin.sales.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"sales": rows})
}

// GET /api/v1/reports/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Sales.Summary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sum)
}
