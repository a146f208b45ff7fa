package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"modaville/internal/domain"
	"modaville/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrInvoiceCancelled = errors.New("invoice is cancelled")
	ErrInvoiceNotFound  = errors.New("invoice not found")
)

type InvoiceService struct {
	Invoices *repos.InvoiceRepo
	Orders   *repos.OrderRepo
}

func NewInvoiceService(invoices *repos.InvoiceRepo, orders *repos.OrderRepo) *InvoiceService {
	return &InvoiceService{Invoices: invoices, Orders: orders}
}

func invoiceCode() string {
	return "INV" + time.Now().Format("02012006") + "-" + strings.ToUpper(uuid.NewString()[:6])
}

func nowTS() string { return time.Now().UTC().Format(time.RFC3339) }

// GenerateForOrder derives an invoice from an order, idempotently by
// order code: if one already exists it is returned, and a concurrent
// insert losing on the unique index resolves the same way.
func (s *InvoiceService) GenerateForOrder(orderCode string) (domain.Invoice, error) {
	if inv, err := s.Invoices.ByOrderCode(orderCode); err == nil {
		return inv, nil
	} else if err != sql.ErrNoRows {
		return domain.Invoice{}, err
	}

	o, lines, err := s.Orders.Get(orderCode)
	if err != nil {
		return domain.Invoice{}, err
	}

	items := make([]domain.InvoiceItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.InvoiceItem{
			ProductName: l.ProductName,
			Qty:         l.Qty,
			Price:       l.Price,
		})
	}
	f := domain.ComputeFinancials(items)

	inv := domain.Invoice{
		ID:              uuid.NewString(),
		Code:            invoiceCode(),
		OrderCode:       o.Code,
		CustomerName:    o.RecipientName,
		CustomerPhone:   o.Phone,
		CustomerAddress: o.Address,
		Subtotal:        f.Subtotal,
		TotalTax:        f.TotalTax,
		TotalDiscount:   f.TotalDiscount,
		FinalAmount:     f.FinalAmount,
		PaymentStatus:   domain.InvoiceUnpaid,
		Status:          domain.InvoiceActive,
		CreatedType:     domain.InvoiceCreatedAuto,
	}
	if o.Paid {
		inv.PaymentStatus = domain.InvoicePaid
	}

	logEntry := domain.InvoiceLog{TS: nowTS(), Action: "create", Note: "generated from order " + o.Code, Actor: "system"}
	if err := s.Invoices.CreateWithItems(&inv, items, logEntry); err != nil {
		if repos.IsDuplicateOrder(err) {
			// Another generation won the insert; return its invoice.
			return s.Invoices.ByOrderCode(orderCode)
		}
		return domain.Invoice{}, err
	}
	return inv, nil
}

type ManualInvoiceInput struct {
	CustomerName    string               `json:"customerName"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerAddress string               `json:"customerAddress"`
	Items           []domain.InvoiceItem `json:"items"`
}

func (s *InvoiceService) CreateManual(actor string, in ManualInvoiceInput) (domain.Invoice, error) {
	f := domain.ComputeFinancials(in.Items)
	inv := domain.Invoice{
		ID:              uuid.NewString(),
		Code:            invoiceCode(),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		Subtotal:        f.Subtotal,
		TotalTax:        f.TotalTax,
		TotalDiscount:   f.TotalDiscount,
		FinalAmount:     f.FinalAmount,
		PaymentStatus:   domain.InvoiceUnpaid,
		Status:          domain.InvoiceActive,
		CreatedType:     domain.InvoiceCreatedManual,
	}
	logEntry := domain.InvoiceLog{TS: nowTS(), Action: "create", Note: "manual invoice", Actor: actor}
	if err := s.Invoices.CreateWithItems(&inv, in.Items, logEntry); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

type UpdateInvoiceInput struct {
	CustomerName    string               `json:"customerName"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerAddress string               `json:"customerAddress"`
	Items           []domain.InvoiceItem `json:"items"`
	Note            string               `json:"note"`
}

// Update mutates customer info and/or line items. Cancelled invoices are
// frozen. Changing items recomputes the financial summary; every mutation
// appends a log entry.
func (s *InvoiceService) Update(actor, id string, in UpdateInvoiceInput) (domain.Invoice, error) {
	inv, _, err := s.Invoices.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Invoice{}, ErrInvoiceNotFound
		}
		return domain.Invoice{}, err
	}
	if inv.Status == domain.InvoiceCancelled {
		return domain.Invoice{}, ErrInvoiceCancelled
	}

	if in.CustomerName != "" || in.CustomerPhone != "" || in.CustomerAddress != "" {
		name, phone, addr := inv.CustomerName, inv.CustomerPhone, inv.CustomerAddress
		if in.CustomerName != "" {
			name = in.CustomerName
		}
		if in.CustomerPhone != "" {
			phone = in.CustomerPhone
		}
		if in.CustomerAddress != "" {
			addr = in.CustomerAddress
		}
		logEntry := domain.InvoiceLog{TS: nowTS(), Action: "update", Note: in.Note, Actor: actor}
		if err := s.Invoices.UpdateCustomer(id, name, phone, addr, logEntry); err != nil {
			return domain.Invoice{}, err
		}
	}

	if in.Items != nil {
		f := domain.ComputeFinancials(in.Items)
		logEntry := domain.InvoiceLog{TS: nowTS(), Action: "update_items", Note: in.Note, Actor: actor}
		if err := s.Invoices.ReplaceItems(id, in.Items, f, logEntry); err != nil {
			return domain.Invoice{}, err
		}
	}

	inv, _, err = s.Invoices.Get(id)
	return inv, err
}

// Cancel freezes the invoice; a previously paid one flips to refunded.
// Re-cancellation is rejected.
func (s *InvoiceService) Cancel(actor, id, note string) (domain.Invoice, error) {
	inv, _, err := s.Invoices.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Invoice{}, ErrInvoiceNotFound
		}
		return domain.Invoice{}, err
	}
	if inv.Status == domain.InvoiceCancelled {
		return domain.Invoice{}, ErrInvoiceCancelled
	}
	payment := inv.PaymentStatus
	if payment == domain.InvoicePaid {
		payment = domain.InvoiceRefunded
	}
	logEntry := domain.InvoiceLog{TS: nowTS(), Action: "cancel", Note: note, Actor: actor}
	if err := s.Invoices.SetStatus(id, domain.InvoiceCancelled, payment, logEntry); err != nil {
		return domain.Invoice{}, err
	}
	inv, _, err = s.Invoices.Get(id)
	return inv, err
}

func (s *InvoiceService) Get(id string) (domain.Invoice, []domain.InvoiceItem, []domain.InvoiceLog, error) {
	inv, items, err := s.Invoices.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Invoice{}, nil, nil, ErrInvoiceNotFound
		}
		return domain.Invoice{}, nil, nil, err
	}
	logs, err := s.Invoices.LogsOf(id)
	if err != nil {
		return domain.Invoice{}, nil, nil, err
	}
	return inv, items, logs, nil
}

func (s *InvoiceService) List(limit int) ([]domain.Invoice, error) {
	return s.Invoices.ListLatest(limit)
}
