package repositories

import (
	"context"
	"errors"

	"arenapay/internal/models"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrOrderNotFound      = errors.New("deposit order not found")
	ErrOrderConflict      = errors.New("deposit order already claimed")
	ErrDuplicateWallet    = errors.New("wallet already exists")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// WalletRepository defines the interface for wallet-related database operations
type WalletRepository interface {
	// Core wallet operations
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	// GetByUserIDForUpdate takes a row lock on the wallet. Must only be
	// called inside ExecuteInTransaction; every balance mutation reads
	// through it so concurrent mutations serialize instead of losing
	// updates.
	GetByUserIDForUpdate(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	// Ledger operations
	CreateTransaction(tx *models.Transaction) error
	GetTransactionByID(id uint) (*models.Transaction, error)
	UpdateTransactionStatus(id uint, status string) error

	// GetTransactionPage returns one page of a user's ledger, newest first,
	// optionally filtered by transaction type, along with the unfiltered
	// total count for the same filter.
	GetTransactionPage(ctx context.Context, userID uint, limit, offset int, txType string) ([]models.Transaction, int64, error)

	// GetStats aggregates lifetime totals from completed ledger entries.
	GetStats(ctx context.Context, userID uint) (*models.WalletStats, error)

	// ClaimDepositOrder flips a created order to paid. Exactly one caller
	// wins: a concurrent verification that already claimed the order gets
	// ErrOrderConflict. Runs inside the credit transaction so the claim
	// and the wallet credit commit together.
	ClaimDepositOrder(orderID string) error

	// ExecuteInTransaction runs fn inside a database transaction; the
	// repository passed to fn is bound to that transaction.
	ExecuteInTransaction(fn func(WalletRepository) error) error
}

// DepositOrderRepository tracks in-flight deposit orders.
type DepositOrderRepository interface {
	Create(order *models.DepositOrder) error
	GetByID(id string) (*models.DepositOrder, error)
	UpdateStatus(id string, status string) error
}
