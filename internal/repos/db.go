package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories/products)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure accounts exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('CUSTOMER','STAFF','ADMIN')),
  permissions_json TEXT NOT NULL DEFAULT '[]',
  is_active INTEGER NOT NULL DEFAULT 1,
  locked_reason TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  sizes_json TEXT NOT NULL DEFAULT '[]',
  colors_json TEXT NOT NULL DEFAULT '[]',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  sold INTEGER NOT NULL DEFAULT 0 CHECK (sold >= 0),
  discount NUMERIC NOT NULL DEFAULT 0 CHECK (discount >= 0),
  gender TEXT NOT NULL DEFAULT 'UNISEX' CHECK (gender IN ('MALE','FEMALE','UNISEX')),
  image_path TEXT NOT NULL DEFAULT '',
  rating_avg NUMERIC NOT NULL DEFAULT 0,
  rating_count INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_gender   ON products(gender);

-- Cart lines: one row per (customer, product, color, size); adds merge
CREATE TABLE IF NOT EXISTS cart_items(
  customer_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  color TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  updated_at TEXT,
  PRIMARY KEY (customer_id, product_id, color, size)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  code TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL DEFAULT '',
  recipient_name TEXT NOT NULL,
  address TEXT NOT NULL,
  phone TEXT NOT NULL,
  total NUMERIC NOT NULL,
  status INTEGER NOT NULL DEFAULT 1 CHECK (status BETWEEN 1 AND 5),
  paid INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_customer   ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_code TEXT NOT NULL REFERENCES orders(code) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  color TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_code);

-- Invoices: UNIQUE(order_code) makes concurrent auto-generation for the
-- same order resolve to a single winner insert.
CREATE TABLE IF NOT EXISTS invoices(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  order_code TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL DEFAULT '',
  customer_address TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL DEFAULT 0,
  total_tax NUMERIC NOT NULL DEFAULT 0,
  total_discount NUMERIC NOT NULL DEFAULT 0,
  final_amount NUMERIC NOT NULL DEFAULT 0,
  payment_status TEXT NOT NULL DEFAULT 'UNPAID' CHECK (payment_status IN ('UNPAID','PAID','REFUNDED')),
  status TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE','CANCELLED')),
  created_type TEXT NOT NULL CHECK (created_type IN ('AUTO','MANUAL')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_order
  ON invoices(order_code) WHERE order_code != '';

CREATE TABLE IF NOT EXISTS invoice_items(
  invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  tax NUMERIC NOT NULL DEFAULT 0,
  discount NUMERIC NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id);

CREATE TABLE IF NOT EXISTS invoice_logs(
  invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
  ts TEXT NOT NULL,
  action TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT '',
  actor TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoice_logs_invoice ON invoice_logs(invoice_id);

-- Audit trail: write-once enforced at the storage layer
CREATE TABLE IF NOT EXISTS audit_logs(
  id TEXT PRIMARY KEY,
  actor_id TEXT NOT NULL DEFAULT '',
  actor_email TEXT NOT NULL DEFAULT '',
  action TEXT NOT NULL,
  resource_type TEXT NOT NULL DEFAULT '',
  resource_id TEXT NOT NULL DEFAULT '',
  method TEXT NOT NULL DEFAULT '',
  path TEXT NOT NULL DEFAULT '',
  status_code INTEGER NOT NULL DEFAULT 0,
  detail_json TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_audit_actor  ON audit_logs(actor_id);
CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_logs(action);

CREATE TRIGGER IF NOT EXISTS audit_logs_no_update
BEFORE UPDATE ON audit_logs
BEGIN
  SELECT RAISE(ABORT, 'audit logs are immutable');
END;

CREATE TRIGGER IF NOT EXISTS audit_logs_no_delete
BEFORE DELETE ON audit_logs
BEGIN
  SELECT RAISE(ABORT, 'audit logs are immutable');
END;

-- Reviews
CREATE TABLE IF NOT EXISTS reviews(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  customer_id TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','APPROVED','REJECTED')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  PRIMARY KEY (product_id, customer_id)
);

-- Wishlist: presence = liked
CREATE TABLE IF NOT EXISTS wishlist_items(
  customer_id TEXT NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (customer_id, product_id)
);
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

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name) VALUES
	  ('tshirts','T-Shirts'),
	  ('jackets','Jackets'),
	  ('sneakers','Sneakers'),
	  ('accessories','Accessories')`)

	tx.MustExec(`INSERT INTO products(id,code,category_id,name,description,price,sizes_json,colors_json,stock,gender,image_path) VALUES
	  ('p-tee-001','SP-TEE-001','tshirts','Classic Cotton Tee','Plain crew-neck tee',19.90,'["S","M","L","XL"]','["White","Black","Red"]',120,'UNISEX','products/p-tee-001/main.jpg'),
	  ('p-jkt-001','SP-JKT-001','jackets','Denim Trucker Jacket','Washed denim jacket',89.00,'["M","L","XL"]','["Blue"]',35,'MALE','products/p-jkt-001/main.jpg'),
	  ('p-snk-001','SP-SNK-001','sneakers','Court Low Sneaker','Leather low-top',75.50,'["38","39","40","41","42"]','["White","Black"]',60,'UNISEX','products/p-snk-001/main.jpg')`)

	return tx.Commit()
}

// seedUsers ensures a customer, a staff account and an admin exist
// (idempotent; safe to run every start).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Name, Email, Phone, Role, Perms, Hash string
	}
	mk := func(id, name, email, phone, role, perms, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Name: name, Email: email, Phone: phone, Role: role, Perms: perms, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "Admin", "admin@modaville.test", "0900000001", "ADMIN", `[]`, "Passw0rd!"),
		mk("u-staff", "Staff", "staff@modaville.test", "0900000002", "STAFF",
			`["manage_product","manage_order","manage_invoice"]`, "Passw0rd!"),
		mk("u-mai", "Mai", "mai@modaville.test", "0900000003", "CUSTOMER", `[]`, "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,email,phone,password_hash,role,permissions_json)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, x.Phone, x.Hash, x.Role, x.Perms); err != nil {
			return err
		}
	}

	return tx.Commit()
}
