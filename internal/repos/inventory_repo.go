package repos

import (
	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Row used by the admin stock listing
type InventoryRow struct {
	ProductID   string `db:"product_id" json:"product_id"`
	Name        string `db:"name" json:"name"`
	Qty         int    `db:"qty_on_hand" json:"qty"`
	IsAvailable bool   `db:"is_available" json:"is_available"`
}

// ListAll returns stock for every product, available or not.
func (r *InventoryRepo) ListAll() ([]InventoryRow, error) {
	rows := []InventoryRow{}
	err := r.db.Select(&rows, `
		SELECT id AS product_id, name, qty_on_hand, is_available
		FROM products
		ORDER BY name
	`)
	return rows, err
}

// Qty returns current on-hand stock for a product.
func (r *InventoryRepo) Qty(productID string) (int, error) {
	var qty int
	if err := r.db.Get(&qty, `SELECT qty_on_hand FROM products WHERE id = ?`, productID); err != nil {
		return 0, err
	}
	return qty, nil
}

// SetQty overwrites on-hand stock. Returns ErrNotFound for unknown products.
func (r *InventoryRepo) SetQty(productID string, qty int) error {
	res, err := r.db.Exec(`
		UPDATE products SET qty_on_hand = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvailable toggles whether a product may be sold.
func (r *InventoryRepo) SetAvailable(productID string, available bool) error {
	res, err := r.db.Exec(`
		UPDATE products SET is_available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, available, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
