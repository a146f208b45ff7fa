package repos

import (
	"strings"

	"modaville/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InvoiceRepo struct{ db *sqlx.DB }

func NewInvoiceRepo(db *sqlx.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

const invoiceCols = `id, code, order_code, customer_name, customer_phone, customer_address,
  subtotal, total_tax, total_discount, final_amount, payment_status, status, created_type,
  created_at, COALESCE(updated_at,'') AS updated_at`

// IsDuplicateOrder reports whether an insert failed on the unique
// invoices(order_code) index, i.e. another generation already won.
// SQLite names the column, not the index, in the violation message.
func IsDuplicateOrder(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: invoices.order_code")
}

// CreateWithItems inserts the invoice, its lines and the creation log
// entry in one transaction.
func (r *InvoiceRepo) CreateWithItems(inv *domain.Invoice, items []domain.InvoiceItem, logEntry domain.InvoiceLog) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO invoices(id, code, order_code, customer_name, customer_phone, customer_address,
	    subtotal, total_tax, total_discount, final_amount, payment_status, status, created_type)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, inv.ID, inv.Code, inv.OrderCode, inv.CustomerName, inv.CustomerPhone, inv.CustomerAddress,
		inv.Subtotal, inv.TotalTax, inv.TotalDiscount, inv.FinalAmount,
		inv.PaymentStatus, inv.Status, inv.CreatedType); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO invoice_items(invoice_id, product_name, qty, price, tax, discount)
		  VALUES(?,?,?,?,?,?)
		`, inv.ID, it.ProductName, it.Qty, it.Price, it.Tax, it.Discount); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
	  INSERT INTO invoice_logs(invoice_id, ts, action, note, actor) VALUES(?,?,?,?,?)
	`, inv.ID, logEntry.TS, logEntry.Action, logEntry.Note, logEntry.Actor); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *InvoiceRepo) Get(id string) (domain.Invoice, []domain.InvoiceItem, error) {
	var inv domain.Invoice
	if err := r.db.Get(&inv, `SELECT `+invoiceCols+` FROM invoices WHERE id = ?`, id); err != nil {
		return domain.Invoice{}, nil, err
	}
	items, err := r.ItemsOf(id)
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	return inv, items, nil
}

func (r *InvoiceRepo) ByOrderCode(orderCode string) (domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.Get(&inv, `SELECT `+invoiceCols+` FROM invoices WHERE order_code = ?`, orderCode)
	return inv, err
}

func (r *InvoiceRepo) ItemsOf(invoiceID string) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := r.db.Select(&items, `
	  SELECT invoice_id, product_name, qty, price, tax, discount
	  FROM invoice_items WHERE invoice_id = ?
	`, invoiceID)
	return items, err
}

func (r *InvoiceRepo) LogsOf(invoiceID string) ([]domain.InvoiceLog, error) {
	var logs []domain.InvoiceLog
	err := r.db.Select(&logs, `
	  SELECT invoice_id, ts, action, note, actor
	  FROM invoice_logs WHERE invoice_id = ? ORDER BY ts
	`, invoiceID)
	return logs, err
}

func (r *InvoiceRepo) ListLatest(limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Invoice
	err := r.db.Select(&out, `
	  SELECT `+invoiceCols+` FROM invoices
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// ReplaceItems swaps the line items and writes the recomputed financial
// summary plus a log entry, all in one transaction.
func (r *InvoiceRepo) ReplaceItems(invoiceID string, items []domain.InvoiceItem, f domain.Financials, logEntry domain.InvoiceLog) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM invoice_items WHERE invoice_id = ?`, invoiceID); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO invoice_items(invoice_id, product_name, qty, price, tax, discount)
		  VALUES(?,?,?,?,?,?)
		`, invoiceID, it.ProductName, it.Qty, it.Price, it.Tax, it.Discount); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
	  UPDATE invoices
	  SET subtotal=?, total_tax=?, total_discount=?, final_amount=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, f.Subtotal, f.TotalTax, f.TotalDiscount, f.FinalAmount, invoiceID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO invoice_logs(invoice_id, ts, action, note, actor) VALUES(?,?,?,?,?)
	`, invoiceID, logEntry.TS, logEntry.Action, logEntry.Note, logEntry.Actor); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *InvoiceRepo) UpdateCustomer(invoiceID, name, phone, address string, logEntry domain.InvoiceLog) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE invoices SET customer_name=?, customer_phone=?, customer_address=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, name, phone, address, invoiceID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO invoice_logs(invoice_id, ts, action, note, actor) VALUES(?,?,?,?,?)
	`, invoiceID, logEntry.TS, logEntry.Action, logEntry.Note, logEntry.Actor); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *InvoiceRepo) SetStatus(invoiceID, status, paymentStatus string, logEntry domain.InvoiceLog) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE invoices SET status=?, payment_status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, status, paymentStatus, invoiceID); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO invoice_logs(invoice_id, ts, action, note, actor) VALUES(?,?,?,?,?)
	`, invoiceID, logEntry.TS, logEntry.Action, logEntry.Note, logEntry.Actor); err != nil {
		return err
	}
	return tx.Commit()
}
