package wallet

import (
	"context"

	"arenapay/internal/models"
	"arenapay/internal/providers/payment"
)

// Service defines the main wallet service interface
type Service interface {
	// Wallet reads
	GetDetails(ctx context.Context, userID uint) (*Details, error)
	GetTransactionHistory(ctx context.Context, userID uint, opts HistoryOptions) (*TransactionPage, error)
	CheckBalance(ctx context.Context, userID uint, amount float64) (*BalanceCheck, error)

	// Deposit flow
	CreateDepositOrder(ctx context.Context, userID uint, amount float64) (*models.DepositOrder, error)
	VerifyDeposit(ctx context.Context, userID uint, payload payment.VerificationPayload) error

	// Withdrawal flow
	Withdraw(ctx context.Context, userID uint, amount float64, bank models.BankAccount) (*models.Transaction, error)
	SettleWithdrawal(ctx context.Context, transactionID uint) error
	RefundWithdrawal(ctx context.Context, transactionID uint, reason string) (*models.Transaction, error)

	// Tournament ledger producers
	ChargeTournamentFee(ctx context.Context, userID uint, amount float64, tournamentRef, description string) (*models.Transaction, error)
	CreditPrize(ctx context.Context, userID uint, amount float64, tournamentRef, description string) (*models.Transaction, error)
	GrantBonus(ctx context.Context, userID uint, amount float64, description string) (*models.Transaction, error)

	// Wallet management
	CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error)
}

// WalletCache is the subset of the cache layer the service depends on.
type WalletCache interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}
