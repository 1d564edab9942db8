package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"shopdesk/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `u.id, u.email, u.name, u.password_hash, u.role`

func (r *UserRepo) one(query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	return r.one(`SELECT `+userCols+` FROM users u WHERE LOWER(u.email) = ?`, strings.ToLower(email))
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	return r.one(`SELECT `+userCols+` FROM users u WHERE u.id = ?`, id)
}

// BindSession attaches sid (the till's cookie value) to a staff user.
func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO sessions(id, user_id, last_seen)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = CURRENT_TIMESTAMP`, sid, userID)
	return err
}

// SessionUser returns the user bound to sid, or ErrNotFound.
func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	return r.one(`
	  SELECT `+userCols+`
	  FROM sessions s
	  JOIN users u ON u.id = s.user_id
	  WHERE s.id = ?`, sid)
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.db.Exec(`UPDATE sessions SET user_id = NULL, last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return err
}
