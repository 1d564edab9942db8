package cart

import "shopdesk/internal/domain"

// LowStockThreshold is the remaining quantity at or below which a product is
// reported as low on stock.
const LowStockThreshold = 5

type StockLevel string

const (
	InStock    StockLevel = "IN_STOCK"
	LowStock   StockLevel = "LOW_STOCK"
	OutOfStock StockLevel = "OUT_OF_STOCK"
)

// AvailableStock is the quantity of p that can still be added to c: on-hand
// stock minus what the cart already holds.
func AvailableStock(p domain.Product, c Cart) int {
	inCart := 0
	if l, ok := c.Line(p.ID); ok {
		inCart = l.Quantity
	}
	return p.QuantityOnHand - inCart
}

func StockLevelOf(available int) StockLevel {
	switch {
	case available <= 0:
		return OutOfStock
	case available <= LowStockThreshold:
		return LowStock
	}
	return InStock
}

// Availability classifies p for display against the current cart.
func Availability(p domain.Product, c Cart) domain.Availability {
	avail := AvailableStock(p, c)
	if !p.IsAvailable {
		return domain.Availability{Status: string(OutOfStock), Qty: 0}
	}
	return domain.Availability{Status: string(StockLevelOf(avail)), Qty: max(avail, 0)}
}
