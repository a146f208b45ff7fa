package repos

import (
	"fmt"

	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `code, customer_id, recipient_name, address, phone, total, status, paid,
  created_at, COALESCE(updated_at,'') AS updated_at`

// CreateWithItems inserts the order header, snapshots the line items and
// adjusts product stock/sold counters in one transaction. The guarded
// UPDATE keeps stock non-negative; any short row fails the whole order.
func (r *OrderRepo) CreateWithItems(o *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(code, customer_id, recipient_name, address, phone, total, status, paid)
	  VALUES(?,?,?,?,?,?,?,?)
	`, o.Code, o.CustomerID, o.RecipientName, o.Address, o.Phone, o.Total, o.Status, o.Paid); err != nil {
		return err
	}

	for _, it := range items {
		res, err := tx.Exec(`
		  UPDATE products
		  SET stock = stock - ?, sold = sold + ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND stock >= ?
		`, it.Qty, it.Qty, it.ProductID, it.Qty)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("insufficient stock for %s", it.ProductID)
		}
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_code, product_id, product_name, qty, price, color, size)
		  VALUES(?,?,?,?,?,?,?)
		`, o.Code, it.ProductID, it.ProductName, it.Qty, it.Price, it.Color, it.Size); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(code string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE code = ?`, code); err != nil {
		return domain.Order{}, nil, err
	}
	items, err := r.items(code)
	if err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) items(code string) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Select(&items, `
	  SELECT order_code, product_id, product_name, qty, price, color, size
	  FROM order_items
	  WHERE order_code = ?
	  ORDER BY product_name
	`, code)
	return items, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByCustomer(customerID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE customer_id = ?
	  ORDER BY datetime(created_at) DESC
	`, customerID)
	return out, err
}

// TrackByCodePhone is the unauthenticated guest-tracking lookup.
func (r *OrderRepo) TrackByCodePhone(code, phone string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE code = ? AND phone = ?`, code, phone); err != nil {
		return domain.Order{}, nil, err
	}
	items, err := r.items(code)
	if err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) UpdateStatus(code string, status int, paid bool) error {
	_, err := r.db.Exec(`
	  UPDATE orders SET status = ?, paid = ?, updated_at = CURRENT_TIMESTAMP WHERE code = ?
	`, status, paid, code)
	return err
}

func (r *OrderRepo) SetPaid(code string, paid bool) error {
	_, err := r.db.Exec(`UPDATE orders SET paid = ?, updated_at = CURRENT_TIMESTAMP WHERE code = ?`, paid, code)
	return err
}
