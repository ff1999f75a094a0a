package models

import "time"

type PaymentStatus string

const (
	PaymentSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Payment is a simulated charge against an order. Several attempts may exist
// per order; the most recent one is authoritative.
type Payment struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	OrderID       uint          `json:"order_id" gorm:"not null;index"`
	Amount        float64       `json:"amount" gorm:"not null"`
	Method        string        `json:"method"`
	TransactionID string        `json:"transaction_id" gorm:"uniqueIndex;not null"`
	Status        PaymentStatus `json:"status" gorm:"not null"`
	PaymentTime   time.Time     `json:"payment_time"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
