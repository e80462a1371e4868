package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeDeposit       = "deposit"
	TransactionTypeWithdrawal    = "withdrawal"
	TransactionTypeTournamentFee = "tournament_fee"
	TransactionTypePrizeWin      = "prize_win"
	TransactionTypeRefund        = "refund"
	TransactionTypeBonus         = "bonus"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Transaction is a single ledger entry. Amount is signed: credits are
// positive, debits negative. BalanceAfter snapshots the wallet balance at
// the moment the entry was written. Completed entries are never mutated.
type Transaction struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	UserID       uint    `gorm:"index;not null" json:"user_id"`
	Type         string  `gorm:"not null;index" json:"type"`
	Amount       float64 `gorm:"not null" json:"amount"`
	Status       string  `gorm:"not null;default:'pending'" json:"status"`
	BalanceAfter float64 `json:"balance_after"`
	Description  string  `json:"description"`
	Reference    string  `gorm:"index" json:"reference,omitempty"` // tournament or external link
	Metadata     JSON    `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidTransactionType reports whether t is a known ledger type.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeTournamentFee, TransactionTypePrizeWin,
		TransactionTypeRefund, TransactionTypeBonus:
		return true
	}
	return false
}
