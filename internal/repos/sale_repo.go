package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// StockError reports the product that could not be sold at the requested
// quantity when the sale was written.
type StockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (need %d, have %d)", e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

type NewSaleItem struct {
	ProductID      string
	Qty            int
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
}

type NewSale struct {
	ID              string
	CustomerID      *string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	Subtotal        decimal.Decimal
	OverallDiscount decimal.Decimal
	Total           decimal.Decimal
	PaymentMethod   string
	Notes           *string
	StaffID         string
	Items           []NewSaleItem
}

// Create records the sale and takes its items out of stock in one
// transaction. Stock is re-checked here; a shortfall aborts the whole sale
// with a *StockError. It returns the sale's created_at timestamp.
func (r *SaleRepo) Create(ctx context.Context, s NewSale) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var staff any
	if s.StaffID != "" {
		staff = s.StaffID
	}
	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO sales
	    (id, customer_id, customer_name, customer_phone, customer_email,
	     subtotal, overall_discount, total, payment_method, notes, staff_id, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, s.ID, s.CustomerID, s.CustomerName, s.CustomerPhone, s.CustomerEmail,
		s.Subtotal, s.OverallDiscount, s.Total, s.PaymentMethod, s.Notes, staff); err != nil {
		return "", err
	}

	for _, it := range s.Items {
		var p struct {
			Qty       int             `db:"qty_on_hand"`
			Available bool            `db:"is_available"`
			Cost      decimal.Decimal `db:"cost_price"`
		}
		err := tx.GetContext(ctx, &p, `SELECT qty_on_hand, is_available, cost_price FROM products WHERE id = ?`, it.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("product %s: %w", it.ProductID, ErrNotFound)
		}
		if err != nil {
			return "", err
		}
		if !p.Available {
			return "", &StockError{ProductID: it.ProductID, Requested: it.Qty, Available: 0}
		}
		if p.Qty < it.Qty {
			return "", &StockError{ProductID: it.ProductID, Requested: it.Qty, Available: p.Qty}
		}

		if _, err := tx.ExecContext(ctx, `
		  UPDATE products SET qty_on_hand = qty_on_hand - ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ?`, it.Qty, it.ProductID); err != nil {
			return "", err
		}
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO sale_items(sale_id, product_id, qty, unit_price, discount_amount, cost_price)
		  VALUES(?, ?, ?, ?, ?, ?)`, s.ID, it.ProductID, it.Qty, it.UnitPrice, it.DiscountAmount, p.Cost); err != nil {
			return "", err
		}
	}

	var createdAt string
	if err := tx.GetContext(ctx, &createdAt, `SELECT created_at FROM sales WHERE id = ?`, s.ID); err != nil {
		return "", err
	}
	return createdAt, tx.Commit()
}

// ---------- Receipt / report reads ----------

type SaleRow struct {
	ID              string          `db:"id" json:"id"`
	CustomerID      *string         `db:"customer_id" json:"customer_id"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	CustomerEmail   *string         `db:"customer_email" json:"customer_email"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	OverallDiscount decimal.Decimal `db:"overall_discount" json:"overall_discount"`
	Total           decimal.Decimal `db:"total" json:"total"`
	PaymentMethod   string          `db:"payment_method" json:"payment_method"`
	Notes           *string         `db:"notes" json:"notes"`
	StaffID         *string         `db:"staff_id" json:"staff_id"`
	CreatedAt       string          `db:"created_at" json:"created_at"`
}

type SaleItemRow struct {
	ProductID      string          `db:"product_id" json:"product_id"`
	Name           string          `db:"name" json:"name"`
	Qty            int             `db:"qty" json:"quantity"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unit_price"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
}

const saleCols = `id, customer_id, customer_name, customer_phone, customer_email,
	  subtotal, overall_discount, total, payment_method, notes, staff_id, created_at`

func (r *SaleRepo) Get(ctx context.Context, id string) (SaleRow, []SaleItemRow, error) {
	var s SaleRow
	err := r.db.GetContext(ctx, &s, `SELECT `+saleCols+` FROM sales WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return SaleRow{}, nil, ErrNotFound
	}
	if err != nil {
		return SaleRow{}, nil, err
	}

	items := []SaleItemRow{}
	if err := r.db.SelectContext(ctx, &items, `
		SELECT si.product_id, p.name, si.qty, si.unit_price, si.discount_amount
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ?
		ORDER BY p.name
	`, id); err != nil {
		return SaleRow{}, nil, err
	}
	return s, items, nil
}

func (r *SaleRepo) ListLatest(ctx context.Context, limit int) ([]SaleRow, error) {
	if limit <= 0 {
		limit = 50
	}
	out := []SaleRow{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+saleCols+`
		FROM sales
		ORDER BY datetime(created_at) DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

type SalesSummary struct {
	Sales     int             `json:"sales"`
	Items     int             `json:"items"`
	Revenue   decimal.Decimal `json:"revenue"`
	Discounts decimal.Decimal `json:"discounts"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
}

// Summary aggregates sales created in [from, to). Bounds are sqlite
// timestamps ("2006-01-02 15:04:05"). Money is summed in Go so the totals
// stay exact.
func (r *SaleRepo) Summary(ctx context.Context, from, to string) (SalesSummary, error) {
	var sales []struct {
		Total    decimal.Decimal `db:"total"`
		Discount decimal.Decimal `db:"overall_discount"`
	}
	if err := r.db.SelectContext(ctx, &sales, `
		SELECT total, overall_discount
		FROM sales
		WHERE created_at >= ? AND created_at < ?
	`, from, to); err != nil {
		return SalesSummary{}, err
	}
	var items []struct {
		Qty      int             `db:"qty"`
		Cost     decimal.Decimal `db:"cost_price"`
		Discount decimal.Decimal `db:"discount_amount"`
	}
	if err := r.db.SelectContext(ctx, &items, `
		SELECT si.qty, si.cost_price, si.discount_amount
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.created_at >= ? AND s.created_at < ?
	`, from, to); err != nil {
		return SalesSummary{}, err
	}

	s := SalesSummary{Sales: len(sales)}
	for _, x := range sales {
		s.Revenue = s.Revenue.Add(x.Total)
		s.Discounts = s.Discounts.Add(x.Discount)
	}
	for _, it := range items {
		s.Items += it.Qty
		s.Cost = s.Cost.Add(it.Cost.Mul(decimal.NewFromInt(int64(it.Qty))))
		s.Discounts = s.Discounts.Add(it.Discount)
	}
	s.Profit = s.Revenue.Sub(s.Cost)
	return s, nil
}
