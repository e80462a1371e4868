package models

// BankAccount carries the payout destination for a withdrawal request.
// It is never persisted as-is; withdrawal transactions store a masked
// reference in their metadata.
type BankAccount struct {
	AccountNumber     string `json:"account_number"`
	IFSC              string `json:"ifsc_code"`
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
}

// MaskedAccountNumber returns the account number with all but the last
// four digits hidden.
func (b BankAccount) MaskedAccountNumber() string {
	n := len(b.AccountNumber)
	if n <= 4 {
		return b.AccountNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = 'X'
	}
	copy(masked[n-4:], b.AccountNumber[n-4:])
	return string(masked)
}
