package cart

import (
	"fmt"
	"strings"

	"shopdesk/internal/validate"
)

// WalkInName is recorded on sales made to walk-in customers.
const WalkInName = "Walk-in Customer"

// Rejection is the single failure outcome of Validate, tagged with the
// request field it concerns.
type Rejection struct {
	Field  string `json:"field"`
	Reason string `json:"error"`
}

func (r *Rejection) Error() string { return r.Field + ": " + r.Reason }

func reject(field, format string, args ...any) *Rejection {
	return &Rejection{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ResolvedCustomer is the concrete customer a sale is recorded against.
// CustomerID is nil for new and walk-in customers.
type ResolvedCustomer struct {
	Kind       CustomerKind
	CustomerID *string
	Name       string
	Phone      string
	Email      *string
}

// Validate gates submission. Checks run in a fixed order and the first
// failure is returned as a *Rejection; the cart is never modified.
func Validate(c Cart) (ResolvedCustomer, error) {
	if c.IsEmpty() {
		return ResolvedCustomer{}, reject("items", "cart is empty")
	}
	for i, l := range c.Lines {
		switch {
		case l.Quantity <= 0:
			return ResolvedCustomer{}, reject(fmt.Sprintf("items[%d].quantity", i), "quantity for %s must be greater than zero", l.ProductID)
		case !l.UnitPrice.IsPositive():
			return ResolvedCustomer{}, reject(fmt.Sprintf("items[%d].unit_price", i), "unit price for %s must be greater than zero", l.ProductID)
		case l.LineDiscount.IsNegative():
			return ResolvedCustomer{}, reject(fmt.Sprintf("items[%d].line_discount", i), "discount for %s cannot be negative", l.ProductID)
		}
	}

	cust, rej := resolveCustomer(c.Customer)
	if rej != nil {
		return ResolvedCustomer{}, rej
	}

	if c.OverallDiscount.IsNegative() {
		return ResolvedCustomer{}, reject("overall_discount", "overall discount cannot be negative")
	}
	if !c.Payment.Valid() {
		return ResolvedCustomer{}, reject("payment_method", "unknown payment method %q", c.Payment)
	}
	return cust, nil
}

func resolveCustomer(sel CustomerSelection) (ResolvedCustomer, *Rejection) {
	switch sel.Kind {
	case CustomerExisting:
		id := strings.TrimSpace(sel.CustomerID)
		if id == "" {
			return ResolvedCustomer{}, reject("customer_id", "select a customer")
		}
		return ResolvedCustomer{
			Kind:       CustomerExisting,
			CustomerID: &id,
			Name:       strings.TrimSpace(sel.Name),
			Phone:      strings.TrimSpace(sel.Phone),
			Email:      optional(sel.Email),
		}, nil

	case CustomerNew:
		name, ok := validate.Name(sel.Name)
		if !ok {
			if strings.TrimSpace(sel.Name) == "" {
				return ResolvedCustomer{}, reject("customer_name", "customer name is required")
			}
			return ResolvedCustomer{}, reject("customer_name", "customer name must be at most %d characters", validate.NameMaxLen)
		}
		phone, rej := checkPhone(sel.Phone)
		if rej != nil {
			return ResolvedCustomer{}, rej
		}
		var email *string
		if strings.TrimSpace(sel.Email) != "" {
			e, ok := validate.Email(sel.Email)
			if !ok {
				return ResolvedCustomer{}, reject("customer_email", "enter a valid email address")
			}
			email = &e
		}
		return ResolvedCustomer{Kind: CustomerNew, Name: name, Phone: phone, Email: email}, nil

	case CustomerWalkIn:
		phone, rej := checkPhone(sel.Phone)
		if rej != nil {
			return ResolvedCustomer{}, rej
		}
		return ResolvedCustomer{Kind: CustomerWalkIn, Name: WalkInName, Phone: phone}, nil
	}
	return ResolvedCustomer{}, reject("customer", "choose an existing, new or walk-in customer")
}

func checkPhone(raw string) (string, *Rejection) {
	if strings.TrimSpace(raw) == "" {
		return "", reject("customer_phone", "phone number is required")
	}
	phone, ok := validate.Phone(raw)
	if !ok {
		return "", reject("customer_phone", "phone number must be %d to %d characters", validate.PhoneMinLen, validate.PhoneMaxLen)
	}
	return phone, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
