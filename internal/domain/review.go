package domain

const (
	ReviewPending  = "PENDING"
	ReviewApproved = "APPROVED"
	ReviewRejected = "REJECTED"
)

// Review is unique per (product, customer). The product's rating_avg and
// rating_count are recomputed from approved reviews after every write.
type Review struct {
	ProductID  string `db:"product_id" json:"productId"`
	CustomerID string `db:"customer_id" json:"customerId"`
	Rating     int    `db:"rating" json:"rating"`
	Comment    string `db:"comment" json:"comment"`
	Status     string `db:"status" json:"status"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
	UpdatedAt  string `db:"updated_at" json:"-"`
}

// WishlistEntry has toggle semantics: presence means liked.
type WishlistEntry struct {
	CustomerID string `db:"customer_id" json:"customerId"`
	ProductID  string `db:"product_id" json:"productId"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}
