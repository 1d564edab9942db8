// Package cart holds the checkout cart engine: an immutable Cart value with
// pure transitions, stock reconciliation against the catalog, pricing, the
// pre-submission validator and the sale payload assembler.
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"shopdesk/internal/domain"
)

var (
	ErrProductUnavailable = errors.New("product is not available for sale")
	ErrLineNotFound       = errors.New("product is not in the cart")
)

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentCard        PaymentMethod = "card"
	PaymentMobileMoney PaymentMethod = "mobile_money"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileMoney:
		return true
	}
	return false
}

type CustomerKind string

const (
	CustomerExisting CustomerKind = "existing"
	CustomerNew      CustomerKind = "new"
	CustomerWalkIn   CustomerKind = "walkin"
)

// CustomerSelection is a tagged union keyed by Kind. Existing uses
// CustomerID (Name/Phone are carried for the receipt), New uses
// Name/Phone/Email, WalkIn uses Phone only.
type CustomerSelection struct {
	Kind       CustomerKind `json:"kind"`
	CustomerID string       `json:"customer_id,omitempty"`
	Name       string       `json:"name,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Email      string       `json:"email,omitempty"`
}

// Line is one product entry. The product is referenced by id only; stock is
// always read from the catalog record passed to a transition.
type Line struct {
	ProductID    string          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineDiscount decimal.Decimal `json:"line_discount"`
}

type Cart struct {
	Lines           []Line            `json:"lines"`
	OverallDiscount decimal.Decimal   `json:"overall_discount"`
	Customer        CustomerSelection `json:"customer"`
	Payment         PaymentMethod     `json:"payment_method"`
	Notes           string            `json:"notes,omitempty"`
}

type WarningCode string

const (
	WarnOutOfStock WarningCode = "out_of_stock"
	WarnLowStock   WarningCode = "low_stock"
	WarnClamped    WarningCode = "quantity_clamped"
)

// Warning reports a capacity problem that was absorbed without failing the
// operation.
type Warning struct {
	Code      WarningCode `json:"code"`
	ProductID string      `json:"product_id"`
	Available int         `json:"available"`
}

func (w *Warning) String() string {
	switch w.Code {
	case WarnOutOfStock:
		return fmt.Sprintf("%s is out of stock", w.ProductID)
	case WarnLowStock:
		return fmt.Sprintf("only %d of %s left", w.Available, w.ProductID)
	case WarnClamped:
		return fmt.Sprintf("quantity of %s limited to %d in stock", w.ProductID, w.Available)
	}
	return string(w.Code)
}

// New returns an empty cart with default checkout details.
func New() Cart {
	return Cart{
		Payment:  PaymentCash,
		Customer: CustomerSelection{Kind: CustomerWalkIn},
	}
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Line returns the line for productID, if any.
func (c Cart) Line(productID string) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

func (c Cart) index(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	next := c
	next.Lines = make([]Line, len(c.Lines))
	copy(next.Lines, c.Lines)
	return next
}

// AddItem adds one unit of p, merging into an existing line. When no stock
// is left the cart is returned unchanged with an out-of-stock warning.
func (c Cart) AddItem(p domain.Product) (Cart, *Warning, error) {
	if !p.IsAvailable {
		return c, nil, ErrProductUnavailable
	}
	avail := AvailableStock(p, c)
	if avail <= 0 {
		return c, &Warning{Code: WarnOutOfStock, ProductID: p.ID, Available: 0}, nil
	}

	next := c.clone()
	if i := next.index(p.ID); i >= 0 {
		next.Lines[i].Quantity = min(next.Lines[i].Quantity+1, p.QuantityOnHand)
	} else {
		next.Lines = append(next.Lines, Line{
			ProductID:    p.ID,
			Quantity:     1,
			UnitPrice:    p.EffectivePrice(),
			LineDiscount: decimal.Zero,
		})
	}

	left := AvailableStock(p, next)
	if StockLevelOf(left) != InStock {
		return next, &Warning{Code: WarnLowStock, ProductID: p.ID, Available: left}, nil
	}
	return next, nil, nil
}

// SetQuantity sets the quantity of p's line. n <= 0 removes the line; values
// above the on-hand stock are clamped with a warning.
func (c Cart) SetQuantity(p domain.Product, n int) (Cart, *Warning, error) {
	i := c.index(p.ID)
	if i < 0 {
		return c, nil, ErrLineNotFound
	}
	if n <= 0 {
		return c.RemoveItem(p.ID), nil, nil
	}

	var w *Warning
	if n > p.QuantityOnHand {
		n = p.QuantityOnHand
		w = &Warning{Code: WarnClamped, ProductID: p.ID, Available: p.QuantityOnHand}
	}
	if n <= 0 {
		// stock vanished since the line was added
		return c.RemoveItem(p.ID), &Warning{Code: WarnOutOfStock, ProductID: p.ID}, nil
	}

	next := c.clone()
	next.Lines[i].Quantity = n
	return next, w, nil
}

func (c Cart) SetUnitPrice(productID string, price decimal.Decimal) (Cart, error) {
	i := c.index(productID)
	if i < 0 {
		return c, ErrLineNotFound
	}
	next := c.clone()
	next.Lines[i].UnitPrice = price
	return next, nil
}

func (c Cart) SetLineDiscount(productID string, amount decimal.Decimal) (Cart, error) {
	i := c.index(productID)
	if i < 0 {
		return c, ErrLineNotFound
	}
	next := c.clone()
	next.Lines[i].LineDiscount = amount
	return next, nil
}

// RemoveItem drops the line for productID. Removing a missing line is a no-op.
func (c Cart) RemoveItem(productID string) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	next := c
	next.Lines = make([]Line, 0, len(c.Lines)-1)
	next.Lines = append(next.Lines, c.Lines[:i]...)
	next.Lines = append(next.Lines, c.Lines[i+1:]...)
	return next
}

// Clear discards every line and resets the checkout details.
func (c Cart) Clear() Cart { return New() }

func (c Cart) SetOverallDiscount(amount decimal.Decimal) Cart {
	c.OverallDiscount = amount
	return c
}

func (c Cart) SetPaymentMethod(m PaymentMethod) Cart {
	c.Payment = m
	return c
}

func (c Cart) SetCustomer(sel CustomerSelection) Cart {
	c.Customer = sel
	return c
}

func (c Cart) SetNotes(notes string) Cart {
	c.Notes = notes
	return c
}
