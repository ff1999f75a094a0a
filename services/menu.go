package services

import (
	"fmt"
	"strings"

	"foodnow-api/models"
	"foodnow-api/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MenuService manages the menu of the restaurant owned by the caller
type MenuService struct {
	rests *repository.RestaurantRepository
	items *repository.FoodItemRepository
	log   logrus.FieldLogger
}

func NewMenuService(db *gorm.DB, log logrus.FieldLogger) *MenuService {
	return &MenuService{
		rests: repository.NewRestaurantRepository(db),
		items: repository.NewFoodItemRepository(db),
		log:   log,
	}
}

type FoodItemInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	DietaryType models.DietaryType
}

func (in FoodItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("price must be greater than zero: %w", ErrValidation)
	}
	switch in.DietaryType {
	case "", models.DietVeg, models.DietNonVeg, models.DietVegan:
	default:
		return fmt.Errorf("unknown dietary type %q: %w", in.DietaryType, ErrValidation)
	}
	return nil
}

func (s *MenuService) ownedRestaurant(ownerID uint) (*models.Restaurant, error) {
	rest, err := s.rests.FindByOwner(ownerID)
	if err != nil {
		return nil, notFound(err, "restaurant for owner")
	}
	return rest, nil
}

func (s *MenuService) ownedItem(ownerID, itemID uint) (*models.FoodItem, error) {
	rest, err := s.ownedRestaurant(ownerID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.FindForRestaurant(itemID, rest.ID)
	if err != nil {
		return nil, notFound(err, "food item")
	}
	return item, nil
}

func (s *MenuService) List(ownerID uint) ([]models.FoodItem, error) {
	rest, err := s.ownedRestaurant(ownerID)
	if err != nil {
		return nil, err
	}
	return s.items.ListByRestaurant(rest.ID, false)
}

func (s *MenuService) Get(ownerID, itemID uint) (*models.FoodItem, error) {
	return s.ownedItem(ownerID, itemID)
}

// Add creates an available item on the caller's menu
func (s *MenuService) Add(ownerID uint, in FoodItemInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	rest, err := s.ownedRestaurant(ownerID)
	if err != nil {
		return nil, err
	}

	item := &models.FoodItem{RestaurantID: rest.ID, Available: true}
	in.apply(item)
	if err := s.items.Create(item); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"restaurant_id": rest.ID, "item_id": item.ID}).Info("menu item added")
	return item, nil
}

func (s *MenuService) Update(ownerID, itemID uint, in FoodItemInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	in.apply(item)
	if err := s.items.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleAvailability flips the available flag and returns the updated item
func (s *MenuService) ToggleAvailability(ownerID, itemID uint) (*models.FoodItem, error) {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	item.Available = !item.Available
	if err := s.items.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Delete(ownerID, itemID uint) error {
	item, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return err
	}
	if err := s.items.Delete(item.ID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"restaurant_id": item.RestaurantID, "item_id": item.ID}).Info("menu item deleted")
	return nil
}

func (in FoodItemInput) apply(item *models.FoodItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.Price = in.Price
	item.ImageURL = in.ImageURL
	item.Category = in.Category
	item.DietaryType = in.DietaryType
}
