package wallet

import (
	"time"

	"arenapay/internal/models"
)

// Details bundles the wallet with its lifetime stats for the details
// endpoint. Replaced wholesale on every read.
type Details struct {
	Wallet *models.Wallet      `json:"wallet"`
	Stats  *models.WalletStats `json:"stats"`
}

// HistoryOptions selects one page of the ledger.
type HistoryOptions struct {
	Page  int
	Limit int
	Type  string // optional filter, empty means all types
}

// TransactionPage is one page of ledger entries, newest first.
type TransactionPage struct {
	Items       []models.Transaction `json:"transactions"`
	CurrentPage int                  `json:"current_page"`
	TotalPages  int                  `json:"total_pages"`
	TotalCount  int64                `json:"total_count"`
}

// BalanceCheck is the result of a read-only sufficiency probe.
type BalanceCheck struct {
	Sufficient bool    `json:"sufficient"`
	Balance    float64 `json:"balance"`
	Shortfall  float64 `json:"shortfall"`
}

// Config holds configuration for wallet operations.
type Config struct {
	Currency          string
	MinDeposit        float64
	MaxDeposit        float64
	MinWithdrawal     float64
	MaxWithdrawal     float64
	MaxPageLimit      int
	ProcessingTimeout time.Duration
}

// MetricsCollector defines the interface for collecting wallet metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
	RecordBalanceChange(userID uint, oldBalance, newBalance float64)
	RecordError(operation, errType string)
	RecordTransaction(txType string, amount float64)
}
