package models

import "time"

// OrderStatus represents all possible states of a food order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// AllOrderStatuses lists every status in lifecycle order
var AllOrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
	StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Order struct {
	ID                  uint        `json:"id" gorm:"primaryKey"`
	CustomerID          uint        `json:"customer_id" gorm:"not null;index"`
	RestaurantID        uint        `json:"restaurant_id" gorm:"not null;index"`
	DeliveryPersonnelID *uint       `json:"delivery_personnel_id" gorm:"index"`
	Status              OrderStatus `json:"status" gorm:"not null;index"`
	TotalPrice          float64     `json:"total_price"`
	DeliveryAddress     string      `json:"delivery_address"`
	OrderTime           time.Time   `json:"order_time"`
	Items               []OrderItem `json:"items,omitempty" gorm:"-"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	FoodItemID uint    `json:"food_item_id" gorm:"not null"`
	Name       string  `json:"name"`                  // snapshot name
	Quantity   int     `json:"quantity" gorm:"not null"`
	Price      float64 `json:"price" gorm:"not null"` // snapshot price at time of order
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition, 0 for system
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Cart struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CustomerID   uint       `json:"customer_id" gorm:"uniqueIndex;not null"`
	RestaurantID *uint      `json:"restaurant_id"`
	Items        []CartItem `json:"items" gorm:"-"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	CartID     uint `json:"cart_id" gorm:"not null;index"`
	FoodItemID uint `json:"food_item_id" gorm:"not null"`
	Quantity   int  `json:"quantity" gorm:"not null"`
}
