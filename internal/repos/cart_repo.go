package repos

import (
	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// UpsertItem merges by (customer, product, color, size): an existing line
// gains qty instead of a duplicate row appearing.
func (r *CartRepo) UpsertItem(customerID, productID, color, size string, qty int, price float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(customer_id,product_id,color,size,qty,price,updated_at)
		VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(customer_id,product_id,color,size) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, customerID, productID, color, size, qty, price)
	return err
}

func (r *CartRepo) SetQty(customerID, productID, color, size string, qty int) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty=?, updated_at=CURRENT_TIMESTAMP
		WHERE customer_id=? AND product_id=? AND color=? AND size=?
	`, qty, customerID, productID, color, size)
	return err
}

func (r *CartRepo) RemoveItem(customerID, productID, color, size string) error {
	_, err := r.db.Exec(`
		DELETE FROM cart_items
		WHERE customer_id=? AND product_id=? AND color=? AND size=?
	`, customerID, productID, color, size)
	return err
}

func (r *CartRepo) Items(customerID string) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := r.db.Select(&out, `
	  SELECT customer_id, product_id, color, size, qty, price, COALESCE(updated_at,'') AS updated_at
	  FROM cart_items
	  WHERE customer_id = ?
	  ORDER BY product_id, color, size
	`, customerID)
	return out, err
}

func (r *CartRepo) Clear(customerID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE customer_id = ?`, customerID)
	return err
}
