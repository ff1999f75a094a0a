package services

import (
	"strings"

	"foodnow-api/models"
	"foodnow-api/repository"

	"gorm.io/gorm"
)

type RestaurantService struct {
	rests   *repository.RestaurantRepository
	items   *repository.FoodItemRepository
	orders  *repository.OrderRepository
	reviews *repository.ReviewRepository
}

func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{
		rests:   repository.NewRestaurantRepository(db),
		items:   repository.NewFoodItemRepository(db),
		orders:  repository.NewOrderRepository(db),
		reviews: repository.NewReviewRepository(db),
	}
}

type RestaurantProfileInput struct {
	Name    string
	Address string
	Phone   string
}

// Dashboard summarises a restaurant's orders and reviews
type Dashboard struct {
	Restaurant    *models.Restaurant           `json:"restaurant"`
	OrderCounts   map[models.OrderStatus]int64 `json:"order_counts"`
	TotalOrders   int64                        `json:"total_orders"`
	ActiveOrders  int64                        `json:"active_orders"`
	Revenue       float64                      `json:"revenue"`
	MenuItems     int                          `json:"menu_items"`
	AverageRating float64                      `json:"average_rating"`
	ReviewCount   int64                        `json:"review_count"`
}

func (s *RestaurantService) Profile(ownerID uint) (*models.Restaurant, error) {
	rest, err := s.rests.FindByOwner(ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant for owner")
	}
	return rest, nil
}

func (s *RestaurantService) UpdateProfile(ownerID uint, in RestaurantProfileInput) (*models.Restaurant, error) {
	rest, err := s.Profile(ownerID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		rest.Name = name
	}
	rest.Address = strings.TrimSpace(in.Address)
	rest.Phone = strings.TrimSpace(in.Phone)
	if err := s.rests.Save(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) UpdateImage(ownerID uint, imageURL string) (*models.Restaurant, error) {
	rest, err := s.Profile(ownerID)
	if err != nil {
		return nil, err
	}
	rest.ImageURL = imageURL
	if err := s.rests.Save(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) Dashboard(ownerID uint) (*Dashboard, error) {
	rest, err := s.Profile(ownerID)
	if err != nil {
		return nil, err
	}
	counts, err := s.orders.StatusCounts(rest.ID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orders.Revenue(rest.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByRestaurant(rest.ID, false)
	if err != nil {
		return nil, err
	}
	avg, reviewCount, err := s.reviews.AverageRating(rest.ID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Restaurant:    rest,
		OrderCounts:   counts,
		Revenue:       revenue,
		MenuItems:     len(items),
		AverageRating: avg,
		ReviewCount:   reviewCount,
	}
	for status, n := range counts {
		d.TotalOrders += n
		if status != models.StatusDelivered && status != models.StatusCancelled {
			d.ActiveOrders += n
		}
	}
	return d, nil
}

// ── Public catalogue ──

func (s *RestaurantService) ListAll() ([]models.Restaurant, error) {
	return s.rests.List()
}

// PublicMenu returns the available items of a restaurant
func (s *RestaurantService) PublicMenu(restaurantID uint) (*models.Restaurant, []models.FoodItem, error) {
	rest, err := s.rests.FindByID(restaurantID)
	if err != nil {
		return nil, nil, notFound(err, "restaurant")
	}
	items, err := s.items.ListByRestaurant(rest.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return rest, items, nil
}
