package domain

const (
	InvoiceUnpaid   = "UNPAID"
	InvoicePaid     = "PAID"
	InvoiceRefunded = "REFUNDED"

	InvoiceActive    = "ACTIVE"
	InvoiceCancelled = "CANCELLED"

	InvoiceCreatedAuto   = "AUTO"
	InvoiceCreatedManual = "MANUAL"
)

type Invoice struct {
	ID              string  `db:"id" json:"id"`
	Code            string  `db:"code" json:"code"`
	OrderCode       string  `db:"order_code" json:"orderCode,omitempty"`
	CustomerName    string  `db:"customer_name" json:"customerName"`
	CustomerPhone   string  `db:"customer_phone" json:"customerPhone"`
	CustomerAddress string  `db:"customer_address" json:"customerAddress"`
	Subtotal        float64 `db:"subtotal" json:"subtotal"`
	TotalTax        float64 `db:"total_tax" json:"totalTax"`
	TotalDiscount   float64 `db:"total_discount" json:"totalDiscount"`
	FinalAmount     float64 `db:"final_amount" json:"finalAmount"`
	PaymentStatus   string  `db:"payment_status" json:"paymentStatus"`
	Status          string  `db:"status" json:"status"`
	CreatedType     string  `db:"created_type" json:"createdType"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
	UpdatedAt       string  `db:"updated_at" json:"-"`
}

type InvoiceItem struct {
	InvoiceID   string  `db:"invoice_id" json:"-"`
	ProductName string  `db:"product_name" json:"productName"`
	Qty         int     `db:"qty" json:"qty"`
	Price       float64 `db:"price" json:"price"`
	Tax         float64 `db:"tax" json:"tax"`
	Discount    float64 `db:"discount" json:"discount"`
}

// InvoiceLog entries are additive only; mutations never rewrite history.
type InvoiceLog struct {
	InvoiceID string `db:"invoice_id" json:"-"`
	TS        string `db:"ts" json:"ts"`
	Action    string `db:"action" json:"action"`
	Note      string `db:"note" json:"note"`
	Actor     string `db:"actor" json:"actor"`
}

type Financials struct {
	Subtotal      float64 `json:"subtotal"`
	TotalTax      float64 `json:"totalTax"`
	TotalDiscount float64 `json:"totalDiscount"`
	FinalAmount   float64 `json:"finalAmount"`
}

// ComputeFinancials derives the financial summary from line items. The
// summary is never stored independently of the lines it derives from;
// every line-item edit recomputes it through this function.
func ComputeFinancials(items []InvoiceItem) Financials {
	var f Financials
	for _, it := range items {
		q := float64(it.Qty)
		f.Subtotal += it.Price * q
		f.TotalTax += it.Tax * q
		f.TotalDiscount += it.Discount * q
	}
	f.FinalAmount = f.Subtotal + f.TotalTax - f.TotalDiscount
	return f
}
