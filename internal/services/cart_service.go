package services

import (
	"modaville/internal/domain"
	"modaville/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) Add(customerID, productID, color, size string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(customerID, productID, color, size, qty, p.Price)
}

func (s *CartService) SetQty(customerID, productID, color, size string, qty int) error {
	if qty < 1 {
		return s.Carts.RemoveItem(customerID, productID, color, size)
	}
	return s.Carts.SetQty(customerID, productID, color, size, qty)
}

func (s *CartService) Remove(customerID, productID, color, size string) error {
	return s.Carts.RemoveItem(customerID, productID, color, size)
}

type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (s *CartService) View(customerID string) (CartView, error) {
	items, err := s.Carts.Items(customerID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return CartView{Items: items, Total: total}, nil
}

type SyncLine struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
}

// Sync merges a client-held cart into server state; lines matching an
// existing (product, color, size) increment qty via the same upsert rule
// as Add.
func (s *CartService) Sync(customerID string, lines []SyncLine) (CartView, error) {
	for _, l := range lines {
		if l.ProductID == "" {
			continue
		}
		if err := s.Add(customerID, l.ProductID, l.Color, l.Size, l.Qty); err != nil {
			return CartView{}, err
		}
	}
	return s.View(customerID)
}
