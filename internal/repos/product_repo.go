package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"shopdesk/internal/domain"
)

var ErrNotFound = errors.New("not found")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, category_id, name, selling_price, discount_price, cost_price,
    qty_on_hand, is_available, created_at, COALESCE(updated_at,'') AS updated_at`

// ListAvailable returns sellable products, optionally limited to a category.
func (r *ProductRepo) ListAvailable(ctx context.Context, catID string, limit, offset int) ([]domain.Product, error) {
	where := `is_available = 1`
	args := []any{}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}
	args = append(args, limit, offset)

	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT`+productCols+`
  FROM products
  WHERE `+where+`
  ORDER BY name
  LIMIT ? OFFSET ?`, args...)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `
  SELECT`+productCols+`
  FROM products
  WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}
