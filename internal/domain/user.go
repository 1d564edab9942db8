package domain

const (
	RoleCashier = "CASHIER"
	RoleAdmin   = "ADMIN"
)

// User is a staff account operating the till.
type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"`
}
