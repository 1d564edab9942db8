package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"shopdesk/internal/cart"
	"shopdesk/internal/domain"
	"shopdesk/internal/metrics"
)

var (
	ErrSubmissionInFlight = errors.New("a submission for this cart is already in progress")
	ErrProductNotFound    = errors.New("product not found")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// SaleReceipt is what the sale service hands back for a recorded sale.
type SaleReceipt struct {
	SaleID          string             `json:"sale_id"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	OverallDiscount decimal.Decimal    `json:"overall_discount"`
	Total           decimal.Decimal    `json:"total"`
	ItemCount       int                `json:"item_count"`
	PaymentMethod   cart.PaymentMethod `json:"payment_method"`
	CustomerID      *string            `json:"customer_id"`
	CreatedAt       string             `json:"created_at"`
}

type SaleGateway interface {
	Submit(ctx context.Context, p cart.SalePayload) (SaleReceipt, error)
}

// Catalog returns ErrProductNotFound (possibly wrapped) for unknown ids.
type Catalog interface {
	Product(ctx context.Context, id string) (domain.Product, error)
}

// Customers returns ErrCustomerNotFound (possibly wrapped) for unknown ids.
type Customers interface {
	Customer(ctx context.Context, id string) (domain.Customer, error)
	CreateCustomer(ctx context.Context, name, phone, email string) (domain.Customer, error)
}

type Deps struct {
	Catalog   Catalog
	Sales     SaleGateway
	Customers Customers
}

// Session owns the cart of one till session. Every mutation is serialized;
// while a submission is in flight the cart is frozen and further submits
// are refused.
type Session struct {
	ID   string
	deps Deps

	mu         sync.Mutex
	cart       cart.Cart
	submitting bool
}

func NewSession(id string, deps Deps) *Session {
	return &Session{ID: id, deps: deps, cart: cart.New()}
}

func (s *Session) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *Session) mutate(fn func(cart.Cart) (cart.Cart, error)) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return s.cart, ErrSubmissionInFlight
	}
	next, err := fn(s.cart)
	if err != nil {
		return s.cart, err
	}
	s.cart = next
	return next, nil
}

func (s *Session) product(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.deps.Catalog.Product(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("load product %s: %w", id, err)
	}
	return p, nil
}

func (s *Session) AddItem(ctx context.Context, productID string) (cart.Cart, *cart.Warning, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return s.Cart(), nil, err
	}
	var w *cart.Warning
	c, err := s.mutate(func(c cart.Cart) (cart.Cart, error) {
		next, warn, err := c.AddItem(p)
		w = warn
		return next, err
	})
	countWarning(w)
	return c, w, err
}

func (s *Session) SetQuantity(ctx context.Context, productID string, n int) (cart.Cart, *cart.Warning, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return s.Cart(), nil, err
	}
	var w *cart.Warning
	c, err := s.mutate(func(c cart.Cart) (cart.Cart, error) {
		next, warn, err := c.SetQuantity(p, n)
		w = warn
		return next, err
	})
	countWarning(w)
	return c, w, err
}

// LineEdit carries the optional edits of one cart line. Nil fields are left
// as they are.
type LineEdit struct {
	Quantity     *int
	UnitPrice    *decimal.Decimal
	LineDiscount *decimal.Decimal
}

// UpdateLine applies every edit in e as a single mutation: either all of
// them land or the cart is left untouched.
func (s *Session) UpdateLine(ctx context.Context, productID string, e LineEdit) (cart.Cart, *cart.Warning, error) {
	var p domain.Product
	if e.Quantity != nil {
		var err error
		if p, err = s.product(ctx, productID); err != nil {
			return s.Cart(), nil, err
		}
	}
	var w *cart.Warning
	c, err := s.mutate(func(c cart.Cart) (cart.Cart, error) {
		var err error
		if e.UnitPrice != nil {
			if c, err = c.SetUnitPrice(productID, *e.UnitPrice); err != nil {
				return c, err
			}
		}
		if e.LineDiscount != nil {
			if c, err = c.SetLineDiscount(productID, *e.LineDiscount); err != nil {
				return c, err
			}
		}
		if e.Quantity != nil {
			var warn *cart.Warning
			if c, warn, err = c.SetQuantity(p, *e.Quantity); err != nil {
				return c, err
			}
			w = warn
		}
		return c, nil
	})
	if err != nil {
		return c, nil, err
	}
	countWarning(w)
	return c, w, nil
}

func (s *Session) SetUnitPrice(productID string, price decimal.Decimal) (cart.Cart, error) {
	return s.mutate(func(c cart.Cart) (cart.Cart, error) { return c.SetUnitPrice(productID, price) })
}

func (s *Session) SetLineDiscount(productID string, amount decimal.Decimal) (cart.Cart, error) {
	return s.mutate(func(c cart.Cart) (cart.Cart, error) { return c.SetLineDiscount(productID, amount) })
}

func (s *Session) RemoveItem(productID string) (cart.Cart, error) {
	return s.mutate(func(c cart.Cart) (cart.Cart, error) { return c.RemoveItem(productID), nil })
}

// Clear cancels the sale in progress.
func (s *Session) Clear() (cart.Cart, error) {
	return s.mutate(func(c cart.Cart) (cart.Cart, error) { return c.Clear(), nil })
}

// Details carries optional updates to the cart-level checkout fields.
type Details struct {
	OverallDiscount *decimal.Decimal
	PaymentMethod   *cart.PaymentMethod
	Notes           *string
}

func (s *Session) UpdateDetails(d Details) (cart.Cart, error) {
	return s.mutate(func(c cart.Cart) (cart.Cart, error) {
		if d.OverallDiscount != nil {
			c = c.SetOverallDiscount(*d.OverallDiscount)
		}
		if d.PaymentMethod != nil {
			c = c.SetPaymentMethod(*d.PaymentMethod)
		}
		if d.Notes != nil {
			c = c.SetNotes(*d.Notes)
		}
		return c, nil
	})
}

// SelectCustomer sets the customer. Existing customers are looked up so the
// receipt carries their name and phone.
func (s *Session) SelectCustomer(ctx context.Context, sel cart.CustomerSelection) (cart.Cart, error) {
	if sel.Kind == cart.CustomerExisting && sel.CustomerID != "" {
		cu, err := s.deps.Customers.Customer(ctx, sel.CustomerID)
		if err != nil {
			return s.Cart(), fmt.Errorf("load customer %s: %w", sel.CustomerID, err)
		}
		sel = cart.CustomerSelection{Kind: cart.CustomerExisting, CustomerID: cu.ID, Name: cu.Name, Phone: cu.Phone, Email: cu.Email}
	}
	return s.mutate(func(c cart.Cart) (cart.Cart, error) { return c.SetCustomer(sel), nil })
}

func (s *Session) Availability(ctx context.Context, productID string) (domain.Availability, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return cart.Availability(p, s.Cart()), nil
}

// Submit validates the cart, sends exactly one payload to the sale service
// and clears the cart once the sale is recorded. A failed submission leaves
// the cart as it was so it can be corrected and resubmitted.
func (s *Session) Submit(ctx context.Context) (SaleReceipt, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("in_flight").Inc()
		return SaleReceipt{}, ErrSubmissionInFlight
	}
	snapshot := s.cart
	cust, err := cart.Validate(snapshot)
	if err != nil {
		s.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		var rej *cart.Rejection
		if errors.As(err, &rej) {
			metrics.RejectionsTotal.WithLabelValues(rej.Field).Inc()
		}
		return SaleReceipt{}, err
	}
	s.submitting = true
	s.mu.Unlock()

	receipt, err := s.send(ctx, snapshot, cust)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		return SaleReceipt{}, err
	}
	s.cart = s.cart.Clear()
	metrics.SubmissionsTotal.WithLabelValues("recorded").Inc()
	metrics.SaleAmount.Observe(receipt.Total.InexactFloat64())
	return receipt, nil
}

func (s *Session) send(ctx context.Context, snapshot cart.Cart, cust cart.ResolvedCustomer) (SaleReceipt, error) {
	if cust.Kind == cart.CustomerNew {
		email := ""
		if cust.Email != nil {
			email = *cust.Email
		}
		cu, err := s.deps.Customers.CreateCustomer(ctx, cust.Name, cust.Phone, email)
		if err != nil {
			return SaleReceipt{}, fmt.Errorf("create customer: %w", err)
		}
		// A retry after a failed sale must not create the customer twice.
		s.mu.Lock()
		s.cart = s.cart.SetCustomer(cart.CustomerSelection{
			Kind: cart.CustomerExisting, CustomerID: cu.ID, Name: cu.Name, Phone: cu.Phone, Email: cu.Email,
		})
		s.mu.Unlock()
		cust.Kind = cart.CustomerExisting
		cust.CustomerID = &cu.ID
	}
	return s.deps.Sales.Submit(ctx, cart.Assemble(snapshot, cust))
}

func countWarning(w *cart.Warning) {
	if w != nil {
		metrics.StockWarningsTotal.WithLabelValues(string(w.Code)).Inc()
	}
}
