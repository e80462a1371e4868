package models

import "time"

// Deposit order statuses
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// DepositOrder tracks an in-flight deposit awaiting confirmation from the
// external payment provider. The wallet is credited only after the provider
// payload for this order passes signature verification.
type DepositOrder struct {
	ID         string  `gorm:"primarykey" json:"id"` // provider order id
	UserID     uint    `gorm:"index;not null" json:"user_id"`
	Amount     float64 `gorm:"not null" json:"amount"`
	Currency   string  `gorm:"default:'INR'" json:"currency"`
	Receipt    string  `gorm:"uniqueIndex" json:"receipt"`
	Status     string  `gorm:"default:'created'" json:"status"`
	ProviderID string  `json:"provider_id,omitempty"` // provider-side payment reference
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
