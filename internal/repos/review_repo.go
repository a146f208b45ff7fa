package repos

import (
	"database/sql"

	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Upsert keeps one review per (product, customer); re-submitting replaces
// rating/comment and resets moderation to pending.
func (r *ReviewRepo) Upsert(rev *domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(product_id, customer_id, rating, comment, status)
	  VALUES(?,?,?,?,?)
	  ON CONFLICT(product_id, customer_id) DO UPDATE
	  SET rating=excluded.rating, comment=excluded.comment, status=excluded.status,
	      updated_at=CURRENT_TIMESTAMP
	`, rev.ProductID, rev.CustomerID, rev.Rating, rev.Comment, rev.Status)
	return err
}

func (r *ReviewRepo) SetStatus(productID, customerID, status string) error {
	res, err := r.db.Exec(`
	  UPDATE reviews SET status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE product_id=? AND customer_id=?
	`, status, productID, customerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ReviewRepo) Delete(productID, customerID string) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE product_id=? AND customer_id=?`, productID, customerID)
	return err
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT product_id, customer_id, rating, comment, status, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM reviews WHERE product_id=?
	  ORDER BY datetime(created_at) DESC
	`, productID)
	return out, err
}

// ApprovedAggregate computes the mean rating and count over approved
// reviews only.
func (r *ReviewRepo) ApprovedAggregate(productID string) (avg float64, count int, err error) {
	row := struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}{}
	err = r.db.Get(&row, `
	  SELECT COALESCE(AVG(rating),0) AS avg, COUNT(*) AS count
	  FROM reviews WHERE product_id=? AND status='APPROVED'
	`, productID)
	return row.Avg, row.Count, err
}
