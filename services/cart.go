package services

import (
	"fmt"

	"foodnow-api/models"
	"foodnow-api/repository"

	"gorm.io/gorm"
)

// CartService keeps one single-restaurant cart per customer
type CartService struct {
	db    *gorm.DB
	carts *repository.CartRepository
	items *repository.FoodItemRepository
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:    db,
		carts: repository.NewCartRepository(db),
		items: repository.NewFoodItemRepository(db),
	}
}

// CartLine is a cart item priced with the current menu price
type CartLine struct {
	FoodItemID uint    `json:"food_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Available  bool    `json:"available"`
}

type CartView struct {
	RestaurantID *uint      `json:"restaurant_id"`
	Items        []CartLine `json:"items"`
	Total        float64    `json:"total"`
}

func (s *CartService) Get(customerID uint) (*CartView, error) {
	cart, err := s.carts.GetOrCreate(customerID)
	if err != nil {
		return nil, err
	}
	return s.view(s.items, cart)
}

// AddItem puts qty of a food item in the cart. Adding an item from another
// restaurant empties the cart first.
func (s *CartService) AddItem(customerID, foodItemID uint, qty int) (*CartView, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	var view *CartView
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		items := s.items.WithTx(tx)

		food, err := items.FindByID(foodItemID)
		if err != nil {
			return notFound(err, "food item")
		}
		if !food.Available {
			return fmt.Errorf("%s is not available: %w", food.Name, ErrInvalidState)
		}

		cart, err := carts.GetOrCreate(customerID)
		if err != nil {
			return err
		}
		if cart.RestaurantID != nil && *cart.RestaurantID != food.RestaurantID {
			if err := carts.Clear(cart.ID); err != nil {
				return err
			}
		}
		if cart.RestaurantID == nil || *cart.RestaurantID != food.RestaurantID {
			rid := food.RestaurantID
			if err := carts.SetRestaurant(cart.ID, &rid); err != nil {
				return err
			}
		}
		if err := carts.UpsertItem(cart.ID, food.ID, qty); err != nil {
			return err
		}

		cart, err = carts.GetOrCreate(customerID)
		if err != nil {
			return err
		}
		view, err = s.view(items, cart)
		return err
	})
	return view, err
}

// UpdateItem sets the quantity of a line; zero or less removes it
func (s *CartService) UpdateItem(customerID, foodItemID uint, qty int) (*CartView, error) {
	if qty <= 0 {
		return s.RemoveItem(customerID, foodItemID)
	}
	cart, err := s.carts.GetOrCreate(customerID)
	if err != nil {
		return nil, err
	}
	ok, err := s.carts.SetQuantity(cart.ID, foodItemID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("food item %d is not in the cart: %w", foodItemID, ErrNotFound)
	}
	return s.Get(customerID)
}

func (s *CartService) RemoveItem(customerID, foodItemID uint) (*CartView, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		cart, err := carts.GetOrCreate(customerID)
		if err != nil {
			return err
		}
		ok, err := carts.RemoveItem(cart.ID, foodItemID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("food item %d is not in the cart: %w", foodItemID, ErrNotFound)
		}
		left, err := carts.CountItems(cart.ID)
		if err != nil {
			return err
		}
		if left == 0 {
			return carts.SetRestaurant(cart.ID, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(customerID)
}

func (s *CartService) Clear(customerID uint) error {
	cart, err := s.carts.GetOrCreate(customerID)
	if err != nil {
		return err
	}
	return s.carts.Clear(cart.ID)
}

func (s *CartService) view(items *repository.FoodItemRepository, cart *models.Cart) (*CartView, error) {
	ids := make([]uint, len(cart.Items))
	for i, it := range cart.Items {
		ids[i] = it.FoodItemID
	}
	foods, err := items.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	v := &CartView{RestaurantID: cart.RestaurantID, Items: []CartLine{}}
	for _, it := range cart.Items {
		food, ok := foods[it.FoodItemID]
		if !ok {
			continue
		}
		line := CartLine{
			FoodItemID: food.ID,
			Name:       food.Name,
			Price:      food.Price,
			Quantity:   it.Quantity,
			Subtotal:   food.Price * float64(it.Quantity),
			Available:  food.Available,
		}
		v.Items = append(v.Items, line)
		v.Total += line.Subtotal
	}
	return v, nil
}
