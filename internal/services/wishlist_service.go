package services

import "modaville/internal/repos"

type WishlistService struct {
	Repo *repos.WishlistRepo
}

func NewWishlistService(r *repos.WishlistRepo) *WishlistService { return &WishlistService{Repo: r} }

// Toggle flips membership and reports the resulting state (true = liked).
func (s *WishlistService) Toggle(customerID, productID string) (bool, error) {
	has, err := s.Repo.Has(customerID, productID)
	if err != nil {
		return false, err
	}
	if has {
		return false, s.Repo.Remove(customerID, productID)
	}
	return true, s.Repo.Add(customerID, productID)
}

func (s *WishlistService) List(customerID string) ([]repos.WishlistRow, error) {
	return s.Repo.List(customerID)
}
