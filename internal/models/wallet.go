package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet statuses
const (
	WalletStatusActive = "active"
	WalletStatusLocked = "locked"
)

type Wallet struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	UserID       uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance      float64 `gorm:"default:0" json:"balance"`
	Currency     string  `gorm:"default:'INR'" json:"currency"`
	Status       string  `gorm:"default:'active'" json:"status"`
	StatusReason string  `gorm:"default:''" json:"status_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Ensure balance starts at 0
	w.Balance = 0.0
	return nil
}

// WalletStats aggregates lifetime ledger totals for a wallet.
// All values are absolute (positive) amounts.
type WalletStats struct {
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
	TotalWinnings    float64 `json:"total_winnings"`
	TotalSpent       float64 `json:"total_spent"`
}
