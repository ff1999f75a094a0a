package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer          UserRole = "CUSTOMER"
	RoleRestaurantOwner   UserRole = "RESTAURANT_OWNER"
	RoleDeliveryPersonnel UserRole = "DELIVERY_PERSONNEL"
	RoleAdmin             UserRole = "ADMIN"
)

// DeliveryStatus is only set for delivery personnel
type DeliveryStatus string

const (
	DeliveryOnline     DeliveryStatus = "ONLINE"
	DeliveryOffline    DeliveryStatus = "OFFLINE"
	DeliveryOnDelivery DeliveryStatus = "ON_DELIVERY"
)

type User struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null"`
	Email          string          `json:"email" gorm:"uniqueIndex;not null"`
	Phone          string          `json:"phone"`
	PasswordHash   string          `json:"-" gorm:"not null"`
	Role           UserRole        `json:"role" gorm:"not null;index"`
	DeliveryStatus *DeliveryStatus `json:"delivery_status,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PasswordResetToken is a single-use credential; one live token per user
type PasswordResetToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the token is past its expiry at the given instant
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
