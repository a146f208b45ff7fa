package services

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"modaville/internal/domain"
	"modaville/internal/repos"
	"modaville/internal/tasks"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotYourOrder   = errors.New("order belongs to another customer")
	ErrBadTransition  = errors.New("status transition not allowed")
	ErrCancelTooLate  = errors.New("order can only be cancelled while pending")
	ErrEmptyOrder     = errors.New("order has no line items")
	ErrUnknownStatus  = errors.New("unknown order status")
	ErrUnknownProduct = errors.New("unknown product in order line")
)

type OrderService struct {
	Orders   *repos.OrderRepo
	Prods    *repos.ProductRepo
	Carts    *repos.CartRepo
	Invoices *InvoiceService
	Tasks    *tasks.Runner
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo, carts *repos.CartRepo, invoices *InvoiceService, runner *tasks.Runner) *OrderService {
	return &OrderService{Orders: orders, Prods: prods, Carts: carts, Invoices: invoices, Tasks: runner}
}

// orderCode is date-stamped with a random suffix. Collisions are made
// unlikely, not impossible; the primary key rejects the rare loser.
func orderCode() string {
	return time.Now().Format("02012006") + "-" + strings.ToUpper(uuid.NewString()[:6])
}

type OrderLineInput struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type CreateOrderInput struct {
	RecipientName string           `json:"recipientName"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone"`
	Lines         []OrderLineInput `json:"lines"`
}

// Create places an order: snapshots each line from the live product,
// then writes order + lines + stock/sold adjustments atomically. The
// customer's cart is cleared afterwards (best effort).
func (s *OrderService) Create(customerID string, in CreateOrderInput) (domain.Order, error) {
	if len(in.Lines) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(in.Lines))
	total := 0.0
	for _, l := range in.Lines {
		if l.Qty < 1 {
			l.Qty = 1
		}
		p, err := s.Prods.Get(l.ProductID)
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.Order{}, ErrUnknownProduct
			}
			return domain.Order{}, err
		}
		price := p.Price - p.Discount
		if price < 0 {
			price = 0
		}
		items = append(items, domain.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Qty:         l.Qty,
			Price:       price,
			Color:       l.Color,
			Size:        l.Size,
		})
		total += price * float64(l.Qty)
	}

	o := domain.Order{
		Code:          orderCode(),
		CustomerID:    customerID,
		RecipientName: in.RecipientName,
		Address:       in.Address,
		Phone:         in.Phone,
		Total:         total,
		Status:        domain.OrderPending,
	}
	if err := s.Orders.CreateWithItems(&o, items); err != nil {
		return domain.Order{}, err
	}
	if customerID != "" {
		_ = s.Carts.Clear(customerID)
	}
	return o, nil
}

// Transition moves an order to the target status. Non-admin callers are
// held to the rules: terminal states never transition, and cancellation
// is off the table once shipping has started. Admins bypass every check;
// there is deliberately no adjacency graph for them. Reaching delivered
// force-sets the payment flag; reaching approved queues invoice
// generation as a detached side effect.
func (s *OrderService) Transition(actor *domain.User, code string, target int) (domain.Order, error) {
	if !domain.ValidOrderStatus(target) {
		return domain.Order{}, ErrUnknownStatus
	}
	o, _, err := s.Orders.Get(code)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, err
	}

	admin := actor != nil && actor.Role == domain.RoleAdmin
	if !admin {
		if o.Status == domain.OrderDelivered || o.Status == domain.OrderCancelled {
			return domain.Order{}, ErrBadTransition
		}
		if target == domain.OrderCancelled && o.Status >= domain.OrderShipping {
			return domain.Order{}, ErrBadTransition
		}
	}

	paid := o.Paid
	if target == domain.OrderDelivered {
		paid = true
	}
	if err := s.Orders.UpdateStatus(code, target, paid); err != nil {
		return domain.Order{}, err
	}

	if target == domain.OrderApproved && o.Status != domain.OrderApproved {
		s.queueInvoice(code)
	}

	o, _, err = s.Orders.Get(code)
	return o, err
}

func (s *OrderService) queueInvoice(code string) {
	if s.Invoices == nil || s.Tasks == nil {
		return
	}
	s.Tasks.Enqueue("invoice.generate "+code, func() error {
		_, err := s.Invoices.GenerateForOrder(code)
		return err
	})
}

// CancelByCustomer lets the owning customer cancel while still pending.
func (s *OrderService) CancelByCustomer(customerID, code string) (domain.Order, error) {
	o, _, err := s.Orders.Get(code)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, ErrOrderNotFound
		}
		return domain.Order{}, err
	}
	if o.CustomerID != customerID {
		return domain.Order{}, ErrNotYourOrder
	}
	if o.Status != domain.OrderPending {
		return domain.Order{}, ErrCancelTooLate
	}
	if err := s.Orders.UpdateStatus(code, domain.OrderCancelled, o.Paid); err != nil {
		return domain.Order{}, err
	}
	o, _, err = s.Orders.Get(code)
	return o, err
}

// Track is the unauthenticated guest lookup by (code, phone).
func (s *OrderService) Track(code, phone string) (domain.Order, []domain.OrderItem, error) {
	o, items, err := s.Orders.TrackByCodePhone(code, phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, nil, ErrOrderNotFound
		}
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (s *OrderService) Get(code string) (domain.Order, []domain.OrderItem, error) {
	o, items, err := s.Orders.Get(code)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, nil, ErrOrderNotFound
		}
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (s *OrderService) ListAll(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

func (s *OrderService) ListByCustomer(customerID string) ([]domain.Order, error) {
	return s.Orders.ListByCustomer(customerID)
}

// MarkPaid flips the payment flag (used by the payment callback).
func (s *OrderService) MarkPaid(code string) error {
	return s.Orders.SetPaid(code, true)
}
