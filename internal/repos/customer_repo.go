package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"shopdesk/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, name, phone, COALESCE(email,'') AS email, created_at`

func (r *CustomerRepo) Get(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, ErrNotFound
	}
	return c, err
}

// Search matches name or phone; an empty query lists the most recent.
func (r *CustomerRepo) Search(ctx context.Context, q string, limit int) ([]domain.Customer, error) {
	out := []domain.Customer{}
	if q == "" {
		err := r.db.SelectContext(ctx, &out, `
		  SELECT `+customerCols+` FROM customers
		  ORDER BY created_at DESC LIMIT ?`, limit)
		return out, err
	}
	like := "%" + strings.ToLower(q) + "%"
	err := r.db.SelectContext(ctx, &out, `
	  SELECT `+customerCols+` FROM customers
	  WHERE LOWER(name) LIKE ? OR phone LIKE ?
	  ORDER BY name LIMIT ?`, like, like, limit)
	return out, err
}

func (r *CustomerRepo) Create(ctx context.Context, c domain.Customer) error {
	var email any
	if c.Email != "" {
		email = c.Email
	}
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO customers(id, name, phone, email, created_at)
	  VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP)`, c.ID, c.Name, c.Phone, email)
	return err
}
