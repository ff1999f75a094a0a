package services

import (
	"fmt"
	"strings"

	"foodnow-api/models"
	"foodnow-api/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	orders  *repository.OrderRepository
	rests   *repository.RestaurantRepository
	reviews *repository.ReviewRepository
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		orders:  repository.NewOrderRepository(db),
		rests:   repository.NewRestaurantRepository(db),
		reviews: repository.NewReviewRepository(db),
	}
}

// Submit records the customer's review of a delivered order; one per order
func (s *ReviewService) Submit(customerID, orderID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}
	order, err := s.orders.FindForCustomer(orderID, customerID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if order.Status != models.StatusDelivered {
		return nil, fmt.Errorf("order %d is %s, only delivered orders can be reviewed: %w", order.ID, order.Status, ErrInvalidState)
	}
	exists, err := s.reviews.ExistsForOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("order %d was already reviewed: %w", order.ID, ErrConflict)
	}

	rev := &models.Review{
		OrderID:      order.ID,
		CustomerID:   customerID,
		RestaurantID: order.RestaurantID,
		Rating:       rating,
		Comment:      strings.TrimSpace(comment),
	}
	if err := s.reviews.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ListForRestaurant(ownerID uint) ([]models.Review, error) {
	rest, err := s.rests.FindByOwner(ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant for owner")
	}
	return s.reviews.ListByRestaurant(rest.ID)
}
