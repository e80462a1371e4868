package validation

const (
	// Deposit limits (INR)
	MinDepositAmount = 10.0
	MaxDepositAmount = 50000.0

	// Withdrawal limits (INR)
	MinWithdrawalAmount = 100.0
	MaxWithdrawalAmount = 50000.0

	// Bank account constraints
	MinAccountNumberDigits = 9
	MaxAccountNumberDigits = 18
	MinHolderNameLength    = 2

	// Pagination
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)
