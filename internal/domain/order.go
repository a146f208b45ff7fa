package domain

// Order status space. Pending is initial; Delivered and Cancelled are
// terminal for non-admin callers.
const (
	OrderPending   = 1
	OrderApproved  = 2
	OrderShipping  = 3
	OrderDelivered = 4
	OrderCancelled = 5
)

func ValidOrderStatus(s int) bool {
	return s >= OrderPending && s <= OrderCancelled
}

type Order struct {
	Code          string  `db:"code" json:"code"`
	CustomerID    string  `db:"customer_id" json:"customerId"`
	RecipientName string  `db:"recipient_name" json:"recipientName"`
	Address       string  `db:"address" json:"address"`
	Phone         string  `db:"phone" json:"phone"`
	Total         float64 `db:"total" json:"total"`
	Status        int     `db:"status" json:"status"`
	Paid          bool    `db:"paid" json:"paid"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"-"`
}

// OrderItem snapshots product name/price/variant at order time; later
// product edits do not alter historical orders.
type OrderItem struct {
	OrderCode   string  `db:"order_code" json:"-"`
	ProductID   string  `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Qty         int     `db:"qty" json:"qty"`
	Price       float64 `db:"price" json:"price"`
	Color       string  `db:"color" json:"color"`
	Size        string  `db:"size" json:"size"`
}
