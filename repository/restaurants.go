package repository

import (
	"foodnow-api/models"

	"gorm.io/gorm"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) WithTx(tx *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: tx}
}

func (r *RestaurantRepository) Create(rest *models.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Save(rest *models.Restaurant) error {
	return r.DB.Save(rest).Error
}

func (r *RestaurantRepository) FindByID(id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByOwner(ownerID uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.Where("owner_id = ?", ownerID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) List() ([]models.Restaurant, error) {
	var rests []models.Restaurant
	err := r.DB.Order("name asc").Find(&rests).Error
	return rests, err
}

// ── Food items ──

type FoodItemRepository struct{ DB *gorm.DB }

func NewFoodItemRepository(db *gorm.DB) *FoodItemRepository { return &FoodItemRepository{DB: db} }

func (r *FoodItemRepository) WithTx(tx *gorm.DB) *FoodItemRepository {
	return &FoodItemRepository{DB: tx}
}

func (r *FoodItemRepository) Create(item *models.FoodItem) error {
	return r.DB.Create(item).Error
}

func (r *FoodItemRepository) Save(item *models.FoodItem) error {
	return r.DB.Save(item).Error
}

func (r *FoodItemRepository) FindByID(id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindForRestaurant loads an item only if it belongs to the restaurant
func (r *FoodItemRepository) FindForRestaurant(id, restaurantID uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.DB.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *FoodItemRepository) FindByIDs(ids []uint) (map[uint]models.FoodItem, error) {
	out := make(map[uint]models.FoodItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.FoodItem
	if err := r.DB.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *FoodItemRepository) ListByRestaurant(restaurantID uint, onlyAvailable bool) ([]models.FoodItem, error) {
	var items []models.FoodItem
	q := r.DB.Where("restaurant_id = ?", restaurantID)
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	err := q.Order("category asc, name asc").Find(&items).Error
	return items, err
}

func (r *FoodItemRepository) Delete(id uint) error {
	return r.DB.Delete(&models.FoodItem{}, id).Error
}

// ── Reviews ──

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rev *models.Review) error {
	return r.DB.Create(rev).Error
}

func (r *ReviewRepository) ExistsForOrder(orderID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Review{}).Where("order_id = ?", orderID).Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) ListByRestaurant(restaurantID uint) ([]models.Review, error) {
	var revs []models.Review
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("created_at desc").Find(&revs).Error
	return revs, err
}

// AverageRating returns the mean rating and review count of a restaurant
func (r *ReviewRepository) AverageRating(restaurantID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.DB.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}
