package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction status values. Terminal states are set by the payment
// capture flow, not by session initiation.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusSucceeded = "succeeded"
	TransactionStatusFailed    = "failed"
)

// Transaction is a payment-intent record created before capture.
type Transaction struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	SchoolID    uint              `gorm:"index;not null" json:"school_id"`
	School      *School           `gorm:"foreignKey:SchoolID" json:"-"`
	Amount      int64             `gorm:"not null" json:"amount"`
	Currency    string            `gorm:"size:8;not null" json:"currency"`
	PaymentType string            `gorm:"size:64" json:"payment_type"`
	Description string            `gorm:"size:512" json:"description"`
	Status      string            `gorm:"size:32;index;not null;default:pending" json:"status"`
	Metadata    datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
