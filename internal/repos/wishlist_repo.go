package repos

import (
	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Has(customerID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM wishlist_items WHERE customer_id=? AND product_id=?`, customerID, productID)
	return n > 0, err
}

func (r *WishlistRepo) Add(customerID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(customer_id, product_id)
	  VALUES(?, ?)
	  ON CONFLICT(customer_id, product_id) DO NOTHING
	`, customerID, productID)
	return err
}

func (r *WishlistRepo) Remove(customerID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE customer_id=? AND product_id=?`, customerID, productID)
	return err
}

type WishlistRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	ImagePath string  `db:"image_path" json:"imagePath"`
	Active    bool    `db:"active" json:"active"`
}

func (r *WishlistRepo) List(customerID string) ([]WishlistRow, error) {
	out := []WishlistRow{}
	err := r.db.Select(&out, `
	  SELECT p.id AS product_id, p.name, p.price, p.image_path, p.active
	  FROM wishlist_items wi
	  JOIN products p ON p.id = wi.product_id
	  WHERE wi.customer_id = ?
	  ORDER BY p.name
	`, customerID)
	return out, err
}
