package cart

import "github.com/shopspring/decimal"

func init() {
	// The sale API takes money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type SaleItem struct {
	ProductID      string          `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// SalePayload is the transaction-creation request sent to the sale service.
type SalePayload struct {
	CustomerID      *string         `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerEmail   *string         `json:"customer_email"`
	Items           []SaleItem      `json:"items"`
	OverallDiscount decimal.Decimal `json:"overall_discount"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Notes           *string         `json:"notes"`
}

// Assemble maps a validated cart and its resolved customer onto the sale
// payload. It does not touch c.
func Assemble(c Cart, cust ResolvedCustomer) SalePayload {
	p := SalePayload{
		CustomerID:      cust.CustomerID,
		CustomerName:    cust.Name,
		CustomerPhone:   cust.Phone,
		CustomerEmail:   cust.Email,
		Items:           make([]SaleItem, 0, len(c.Lines)),
		OverallDiscount: c.OverallDiscount,
		PaymentMethod:   c.Payment,
		Notes:           optional(c.Notes),
	}
	for _, l := range c.Lines {
		p.Items = append(p.Items, SaleItem{
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.LineDiscount,
		})
	}
	return p
}

// Subtotal sums quantity × unit price − discount over the items.
func (p SalePayload) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range p.Items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.DiscountAmount))
	}
	return sum
}

// Total is the amount due for the payload, floored at zero.
func (p SalePayload) Total() decimal.Decimal {
	t := p.Subtotal().Sub(p.OverallDiscount)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}

func (p SalePayload) ItemCount() int {
	n := 0
	for _, it := range p.Items {
		n += it.Quantity
	}
	return n
}
