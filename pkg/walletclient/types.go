package walletclient

import "time"

// OperationKey scopes independent loading/error state.
type OperationKey string

const (
	KeyWallet       OperationKey = "wallet"
	KeyTransactions OperationKey = "transactions"
	KeyDeposit      OperationKey = "deposit"
	KeyWithdrawal   OperationKey = "withdrawal"
	KeyBalanceCheck OperationKey = "balanceCheck"
)

// operationKeys lists every key, for whole-store resets.
var operationKeys = []OperationKey{
	KeyWallet, KeyTransactions, KeyDeposit, KeyWithdrawal, KeyBalanceCheck,
}

// Transaction types
const (
	TypeDeposit       = "deposit"
	TypeWithdrawal    = "withdrawal"
	TypeTournamentFee = "tournament_fee"
	TypePrizeWin      = "prize_win"
	TypeRefund        = "refund"
	TypeBonus         = "bonus"
)

// Transaction statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Wallet mirrors the wallet object on the wire.
type Wallet struct {
	ID       uint    `json:"id"`
	UserID   uint    `json:"user_id"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

// WalletStats mirrors the lifetime totals on the wire.
type WalletStats struct {
	TotalDeposits    float64 `json:"total_deposits"`
	TotalWithdrawals float64 `json:"total_withdrawals"`
	TotalWinnings    float64 `json:"total_winnings"`
	TotalSpent       float64 `json:"total_spent"`
}

// Transaction is one ledger entry. Amount is signed: credits positive,
// debits negative.
type Transaction struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	BalanceAfter float64   `json:"balance_after"`
	Description  string    `json:"description"`
	Reference    string    `json:"reference,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// TransactionPage is one wholesale-replaced page of the ledger, newest
// first, exactly as received.
type TransactionPage struct {
	Items       []Transaction `json:"transactions"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	TotalCount  int64         `json:"total_count"`
}

// PendingOrder is an in-flight deposit awaiting payment confirmation.
type PendingOrder struct {
	ID            string            `json:"id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Receipt       string            `json:"receipt"`
	ClientPayload map[string]string `json:"client_payload,omitempty"`
}

// VerificationPayload is the opaque gateway payload reported back after
// payment.
type VerificationPayload struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// BankDetails is the payout destination submitted with a withdrawal.
type BankDetails struct {
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
}

// BalanceCheck is the result of a read-only sufficiency probe.
type BalanceCheck struct {
	Sufficient bool    `json:"sufficient"`
	Balance    float64 `json:"balance"`
	Shortfall  float64 `json:"shortfall"`
}

// OperationStatus is the per-key loading/error slot. At most one of the
// two is meaningfully active at a time.
type OperationStatus struct {
	Loading bool
	Error   string
}

// Amount limits enforced client-side before any network call.
const (
	MinDepositAmount    = 10.0
	MaxDepositAmount    = 50000.0
	MinWithdrawalAmount = 100.0
	MaxWithdrawalAmount = 50000.0
)
