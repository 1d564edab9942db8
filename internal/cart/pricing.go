package cart

import "github.com/shopspring/decimal"

// LineSubtotal is unit price × quantity − line discount. It may be negative;
// only the cart total is floored.
func LineSubtotal(l Line) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.LineDiscount)
}

func CartSubtotal(c Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(LineSubtotal(l))
	}
	return sum
}

// CartTotal is max(0, subtotal − overall discount).
func CartTotal(c Cart) decimal.Decimal {
	total := CartSubtotal(c).Sub(c.OverallDiscount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func TotalItemCount(c Cart) int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

type LineTotals struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"line_discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Totals is the presentation view of a cart. Values are rounded to two
// places here and nowhere else.
type Totals struct {
	Lines           []LineTotals    `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	OverallDiscount decimal.Decimal `json:"overall_discount"`
	Total           decimal.Decimal `json:"total"`
	ItemCount       int             `json:"item_count"`
}

func ComputeTotals(c Cart) Totals {
	t := Totals{
		Lines:           make([]LineTotals, 0, len(c.Lines)),
		Subtotal:        CartSubtotal(c).Round(2),
		OverallDiscount: c.OverallDiscount.Round(2),
		Total:           CartTotal(c).Round(2),
		ItemCount:       TotalItemCount(c),
	}
	for _, l := range c.Lines {
		t.Lines = append(t.Lines, LineTotals{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.Round(2),
			Discount:  l.LineDiscount.Round(2),
			Subtotal:  LineSubtotal(l).Round(2),
		})
	}
	return t
}
