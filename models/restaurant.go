package models

import "time"

// ApplicationStatus tracks a restaurant application through admin review
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// RestaurantApplication is a customer's request to become a restaurant owner
type RestaurantApplication struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	ApplicantID     uint              `json:"applicant_id" gorm:"not null;index"`
	RestaurantName  string            `json:"restaurant_name" gorm:"not null"`
	Address         string            `json:"address" gorm:"not null"`
	Phone           string            `json:"phone" gorm:"not null"`
	BusinessID      string            `json:"business_id" gorm:"not null"`
	ImageURL        string            `json:"image_url"`
	Status          ApplicationStatus `json:"status" gorm:"not null;index"`
	RejectionReason *string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Restaurant is only ever created by approving an application
type Restaurant struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OwnerID    uint      `json:"owner_id" gorm:"not null;index"`
	Name       string    `json:"name" gorm:"not null"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	BusinessID string    `json:"business_id"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DietaryType labels a food item for menu filtering
type DietaryType string

const (
	DietVeg    DietaryType = "VEG"
	DietNonVeg DietaryType = "NON_VEG"
	DietVegan  DietaryType = "VEGAN"
)

type FoodItem struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;index"`
	Name         string      `json:"name" gorm:"not null"`
	Description  string      `json:"description"`
	Price        float64     `json:"price" gorm:"not null"`
	ImageURL     string      `json:"image_url"`
	Available    bool        `json:"available" gorm:"not null"`
	Category     string      `json:"category"`
	DietaryType  DietaryType `json:"dietary_type"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Review is left by a customer once an order is delivered
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OrderID      uint      `json:"order_id" gorm:"uniqueIndex;not null"`
	CustomerID   uint      `json:"customer_id" gorm:"not null"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
