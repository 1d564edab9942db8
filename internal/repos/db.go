package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the sqlite database, applies the schema and, when seed is
// set, loads the demo catalogue and staff accounts.
func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if !seed {
		return db, nil
	}
	// Seed baseline data if DB is empty (categories/products/customers)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure staff exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products (money columns hold decimal text, never REAL)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  selling_price TEXT NOT NULL CHECK (CAST(selling_price AS REAL) >= 0),
  discount_price TEXT CHECK (discount_price IS NULL OR CAST(discount_price AS REAL) >= 0),
  cost_price TEXT NOT NULL DEFAULT '0' CHECK (CAST(cost_price AS REAL) >= 0),
  qty_on_hand INTEGER NOT NULL DEFAULT 0 CHECK (qty_on_hand >= 0),
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone);

-- Sales
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  customer_id TEXT NULL REFERENCES customers(id) ON DELETE SET NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_email TEXT,
  subtotal TEXT NOT NULL,
  overall_discount TEXT NOT NULL DEFAULT '0',
  total TEXT NOT NULL CHECK (CAST(total AS REAL) >= 0),
  payment_method TEXT NOT NULL CHECK (payment_method IN ('cash','card','mobile_money')),
  notes TEXT,
  staff_id TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);

CREATE TABLE IF NOT EXISTS sale_items(
  sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price TEXT NOT NULL,
  discount_amount TEXT NOT NULL DEFAULT '0',
  cost_price TEXT NOT NULL DEFAULT '0',
  PRIMARY KEY (sale_id, product_id)
);

-- Staff & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('CASHIER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/customers")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('phones','Phones'),
	  ('accessories','Accessories'),
	  ('audio','Audio')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,selling_price,discount_price,cost_price,qty_on_hand,is_available) VALUES
	  ('tecno-spark-20','phones','Tecno Spark 20','1450.00','1299.00','1100.00',12,1),
	  ('itel-a70','phones','itel A70','899.00',NULL,'720.00',3,1),
	  ('usb-c-cable','accessories','USB-C Cable 1m','35.00',NULL,'12.50',40,1),
	  ('power-bank-10k','accessories','Power Bank 10000mAh','180.00','165.00','120.00',0,1),
	  ('oraimo-buds','audio','Oraimo FreePods 4','420.00',NULL,'300.00',6,1),
	  ('jbl-go3','audio','JBL Go 3 Speaker','650.00',NULL,'480.00',4,0)`)

	tx.MustExec(`INSERT INTO customers(id,name,phone,email) VALUES
	  ('cus-ama','Ama Owusu','0241234567','ama@example.com'),
	  ('cus-kofi','Kofi Mensah','0209876543',NULL)`)

	return tx.Commit()
}

// seedUsers ensures one CASHIER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-cashier", "cashier@shopdesk.test", "Cashier", "CASHIER", "Passw0rd!"),
		mk("u-admin", "admin@shopdesk.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
