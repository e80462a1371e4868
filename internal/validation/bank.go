// Package validation holds the business validation rules shared by the
// wallet service and its handlers.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"arenapay/internal/models"
)

// IFSC: 4 letters identifying the bank, a literal zero, then a 6 character
// alphanumeric branch code. Input is normalized to uppercase first.
var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// NormalizeIFSC uppercases and trims an IFSC code.
func NormalizeIFSC(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidIFSC reports whether code (after normalization) is a well-formed
// IFSC code.
func ValidIFSC(code string) bool {
	return ifscPattern.MatchString(NormalizeIFSC(code))
}

// ValidAccountNumber reports whether n is 9 to 18 digits.
func ValidAccountNumber(n string) bool {
	if len(n) < MinAccountNumberDigits || len(n) > MaxAccountNumberDigits {
		return false
	}
	return digitsOnly.MatchString(n)
}

// ValidateDepositAmount checks the deposit bounds.
func ValidateDepositAmount(amount float64) error {
	if amount < MinDepositAmount || amount > MaxDepositAmount {
		return fmt.Errorf("deposit amount must be between ₹%.0f and ₹%.0f", MinDepositAmount, MaxDepositAmount)
	}
	return nil
}

// ValidateWithdrawalAmount checks the withdrawal bounds against the
// available balance. The effective ceiling is min(balance, MaxWithdrawalAmount).
func ValidateWithdrawalAmount(amount, availableBalance float64) error {
	max := math.Min(availableBalance, MaxWithdrawalAmount)
	if amount < MinWithdrawalAmount || amount > max {
		return fmt.Errorf("withdrawal amount must be between ₹%.0f and ₹%.0f", MinWithdrawalAmount, max)
	}
	return nil
}

// ValidateBankAccount checks every field of a payout destination and
// returns the full error set keyed by field name. An empty map means the
// account is valid.
func ValidateBankAccount(account models.BankAccount) map[string]string {
	errs := make(map[string]string)

	if account.AccountNumber == "" {
		errs["account_number"] = "account number is required"
	} else if !ValidAccountNumber(account.AccountNumber) {
		errs["account_number"] = fmt.Sprintf("account number must be %d to %d digits",
			MinAccountNumberDigits, MaxAccountNumberDigits)
	}

	if !ValidIFSC(account.IFSC) {
		errs["ifsc_code"] = "invalid IFSC code"
	}

	if len(strings.TrimSpace(account.AccountHolderName)) < MinHolderNameLength {
		errs["account_holder_name"] = "account holder name is required"
	}

	if strings.TrimSpace(account.BankName) == "" {
		errs["bank_name"] = "bank name is required"
	}

	return errs
}
