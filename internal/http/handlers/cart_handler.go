package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"shopdesk/internal/cart"
	"shopdesk/internal/checkout"
	applog "shopdesk/internal/log"
	"shopdesk/internal/validate"
)

type CartHandler struct {
	Registry *checkout.Registry
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

type updateLineRequest struct {
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	LineDiscount *decimal.Decimal `json:"line_discount" validate:"omitempty,gte=0"`
}

type detailsRequest struct {
	OverallDiscount *decimal.Decimal `json:"overall_discount" validate:"omitempty,gte=0"`
	PaymentMethod   *string          `json:"payment_method" validate:"omitempty,max=20"`
	Notes           *string          `json:"notes" validate:"omitempty,max=500"`
}

type customerRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=existing new walkin"`
	CustomerID string `json:"customer_id" validate:"max=64"`
	Name       string `json:"name" validate:"max=100"`
	Phone      string `json:"phone" validate:"max=32"`
	Email      string `json:"email" validate:"max=100"`
}

type warningBody struct {
	*cart.Warning
	Message string `json:"message"`
}

type cartBody struct {
	Cart       cart.Cart    `json:"cart"`
	Totals     cart.Totals  `json:"totals"`
	Submitting bool         `json:"submitting"`
	Warning    *warningBody `json:"warning,omitempty"`
}

func (h *CartHandler) session(c *fiber.Ctx) *checkout.Session {
	return h.Registry.Get(c.Cookies("sid"))
}

func respondCart(c *fiber.Ctx, s *checkout.Session, w *cart.Warning) error {
	ct := s.Cart()
	body := cartBody{Cart: ct, Totals: cart.ComputeTotals(ct), Submitting: s.Submitting()}
	if w != nil {
		applog.Info(c, "cart.stock.warning", map[string]any{"code": w.Code, "product_id": w.ProductID, "available": w.Available})
		body.Warning = &warningBody{Warning: w, Message: w.String()}
	}
	return c.JSON(body)
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return respondCart(c, h.session(c), nil)
}

// POST /api/v1/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addItemRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	id, ok := validate.ID(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	s := h.session(c)
	_, w, err := s.AddItem(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondCart(c, s, w)
}

// PATCH /api/v1/cart/items/:id
func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req updateLineRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	s := h.session(c)
	_, w, err := s.UpdateLine(c.UserContext(), id, checkout.LineEdit{
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		LineDiscount: req.LineDiscount,
	})
	if err != nil {
		return fail(c, err)
	}
	return respondCart(c, s, w)
}

// DELETE /api/v1/cart/items/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	s := h.session(c)
	if _, err := s.RemoveItem(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return respondCart(c, s, nil)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	s := h.session(c)
	if _, err := s.Clear(); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.cleared", nil)
	return respondCart(c, s, nil)
}

// PUT /api/v1/cart/details
func (h *CartHandler) Details(c *fiber.Ctx) error {
	var req detailsRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	d := checkout.Details{OverallDiscount: req.OverallDiscount, Notes: req.Notes}
	if req.PaymentMethod != nil {
		pm := cart.PaymentMethod(*req.PaymentMethod)
		d.PaymentMethod = &pm
	}
	s := h.session(c)
	if _, err := s.UpdateDetails(d); err != nil {
		return fail(c, err)
	}
	return respondCart(c, s, nil)
}

// PUT /api/v1/cart/customer
func (h *CartHandler) Customer(c *fiber.Ctx) error {
	var req customerRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	s := h.session(c)
	_, err := s.SelectCustomer(c.UserContext(), cart.CustomerSelection{
		Kind:       cart.CustomerKind(req.Kind),
		CustomerID: req.CustomerID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
	})
	if err != nil {
		return fail(c, err)
	}
	return respondCart(c, s, nil)
}
