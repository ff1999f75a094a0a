package repository

import (
	"foodnow-api/models"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository { return &CartRepository{DB: tx} }

// GetOrCreate returns the customer's cart with items loaded
func (r *CartRepository) GetOrCreate(customerID uint) (*models.Cart, error) {
	var c models.Cart
	err := r.DB.Where("customer_id = ?", customerID).First(&c).Error
	if IsNotFound(err) {
		c = models.Cart{CustomerID: customerID}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.DB.Where("cart_id = ?", c.ID).Order("id asc").Find(&c.Items).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) SetRestaurant(cartID uint, restaurantID *uint) error {
	return r.DB.Model(&models.Cart{}).Where("id = ?", cartID).Update("restaurant_id", restaurantID).Error
}

// UpsertItem adds qty to an existing line or creates a new one
func (r *CartRepository) UpsertItem(cartID, foodItemID uint, qty int) error {
	var line models.CartItem
	err := r.DB.Where("cart_id = ? AND food_item_id = ?", cartID, foodItemID).First(&line).Error
	if err == nil {
		return r.DB.Model(&line).Update("quantity", line.Quantity+qty).Error
	}
	if !IsNotFound(err) {
		return err
	}
	return r.DB.Create(&models.CartItem{CartID: cartID, FoodItemID: foodItemID, Quantity: qty}).Error
}

// SetQuantity returns false when the line does not exist
func (r *CartRepository) SetQuantity(cartID, foodItemID uint, qty int) (bool, error) {
	res := r.DB.Model(&models.CartItem{}).
		Where("cart_id = ? AND food_item_id = ?", cartID, foodItemID).
		Update("quantity", qty)
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) RemoveItem(cartID, foodItemID uint) (bool, error) {
	res := r.DB.Where("cart_id = ? AND food_item_id = ?", cartID, foodItemID).Delete(&models.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) CountItems(cartID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&n).Error
	return n, err
}

// Clear empties the cart and forgets its restaurant
func (r *CartRepository) Clear(cartID uint) error {
	if err := r.DB.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.SetRestaurant(cartID, nil)
}
