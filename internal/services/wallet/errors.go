package wallet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Service errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletLocked        = errors.New("wallet is locked")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidFilter       = errors.New("invalid transaction type filter")
	ErrOrderNotFound       = errors.New("deposit order not found")
	ErrOrderAlreadyPaid    = errors.New("deposit order already processed")
	ErrVerificationFailed  = errors.New("payment verification failed")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotPendingPayout    = errors.New("transaction is not a pending withdrawal")
)

// BankDetailsError carries the full field-level error set from bank
// account validation.
type BankDetailsError struct {
	Fields map[string]string
}

func (e *BankDetailsError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid bank details (" + strings.Join(parts, "; ") + ")"
}
