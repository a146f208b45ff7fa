package services

import (
	"errors"

	"modaville/internal/domain"
	"modaville/internal/repos"
)

var ErrBadRating = errors.New("rating must be between 1 and 5")

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

// Submit upserts the customer's review for a product and recomputes the
// product aggregate. Resubmission resets moderation to pending.
func (s *ReviewService) Submit(customerID, productID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrBadRating
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return err
	}
	rev := &domain.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    comment,
		Status:     domain.ReviewPending,
	}
	if err := s.Reviews.Upsert(rev); err != nil {
		return err
	}
	return s.recompute(productID)
}

func (s *ReviewService) Moderate(productID, customerID, status string) error {
	if status != domain.ReviewApproved && status != domain.ReviewRejected && status != domain.ReviewPending {
		return errors.New("unknown review status")
	}
	if err := s.Reviews.SetStatus(productID, customerID, status); err != nil {
		return err
	}
	return s.recompute(productID)
}

func (s *ReviewService) Delete(productID, customerID string) error {
	if err := s.Reviews.Delete(productID, customerID); err != nil {
		return err
	}
	return s.recompute(productID)
}

func (s *ReviewService) ListByProduct(productID string) ([]domain.Review, error) {
	return s.Reviews.ListByProduct(productID)
}

// recompute writes the mean over approved reviews back to the product;
// the product row is never the authority, this derivation is.
func (s *ReviewService) recompute(productID string) error {
	avg, count, err := s.Reviews.ApprovedAggregate(productID)
	if err != nil {
		return err
	}
	return s.Prods.SetRating(productID, avg, count)
}
