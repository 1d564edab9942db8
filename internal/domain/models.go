package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"-"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

type Product struct {
	ID             string           `db:"id" json:"id"`
	CategoryID     string           `db:"category_id" json:"category_id"`
	Name           string           `db:"name" json:"name"`
	SellingPrice   decimal.Decimal  `db:"selling_price" json:"selling_price"`
	DiscountPrice  *decimal.Decimal `db:"discount_price" json:"discount_price,omitempty"`
	CostPrice      decimal.Decimal  `db:"cost_price" json:"-"` // profit reports only
	QuantityOnHand int              `db:"qty_on_hand" json:"quantity_on_hand"`
	IsAvailable    bool             `db:"is_available" json:"is_available"`
	CreatedAt      string           `db:"created_at" json:"-"`
	UpdatedAt      string           `db:"updated_at" json:"-"`
}

// EffectivePrice is the discount price when it is set and lower than the
// selling price, otherwise the selling price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.SellingPrice) {
		return *p.DiscountPrice
	}
	return p.SellingPrice
}

type Customer struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
