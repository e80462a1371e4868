package walletclient

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
)

// WithdrawFlowState is the withdraw modal state.
type WithdrawFlowState string

const (
	WithdrawStateForm    WithdrawFlowState = "form"
	WithdrawStateSuccess WithdrawFlowState = "success"
)

// WithdrawForm is the full withdrawal form as entered by the user.
type WithdrawForm struct {
	Amount               float64
	AccountNumber        string
	ConfirmAccountNumber string
	IFSCCode             string
	AccountHolderName    string
	BankName             string
}

// IFSC: 4 letters, a literal zero, then 6 alphanumerics. Matched after
// uppercase normalization.
var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

var accountNumberPattern = regexp.MustCompile(`^[0-9]{9,18}$`)

// Validate checks every field at once and returns the full error set
// keyed by field name. It is evaluated synchronously before any network
// call; an empty map means the form may be submitted.
func (f WithdrawForm) Validate(availableBalance float64) map[string]string {
	errs := make(map[string]string)

	maxAmount := math.Min(availableBalance, MaxWithdrawalAmount)
	if f.Amount < MinWithdrawalAmount || f.Amount > maxAmount {
		errs["amount"] = fmt.Sprintf("Enter an amount between %s and %s",
			FormatINR(MinWithdrawalAmount), FormatINR(maxAmount))
	}

	if f.AccountNumber == "" {
		errs["accountNumber"] = "Account number is required"
	} else if !accountNumberPattern.MatchString(f.AccountNumber) {
		errs["accountNumber"] = "Account number must be 9 to 18 digits"
	}

	if f.ConfirmAccountNumber != f.AccountNumber {
		errs["confirmAccountNumber"] = "Account numbers do not match"
	}

	if !ifscPattern.MatchString(strings.ToUpper(strings.TrimSpace(f.IFSCCode))) {
		errs["ifscCode"] = "Enter a valid IFSC code"
	}

	if len(strings.TrimSpace(f.AccountHolderName)) < 2 {
		errs["accountHolderName"] = "Account holder name is required"
	}

	if strings.TrimSpace(f.BankName) == "" {
		errs["bankName"] = "Bank name is required"
	}

	return errs
}

// WithdrawFlow controls the withdraw modal: form → success. Submission
// is blocked until the whole form validates; on success the submitted
// transaction stays visible for confirmation and the modal does not
// auto-close.
type WithdrawFlow struct {
	gw *Gateway

	mu        sync.Mutex
	state     WithdrawFlowState
	errors    map[string]string
	submitted *Transaction
}

func NewWithdrawFlow(gw *Gateway) *WithdrawFlow {
	return &WithdrawFlow{gw: gw, state: WithdrawStateForm}
}

// Open resets the flow to an empty form.
func (f *WithdrawFlow) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = WithdrawStateForm
	f.errors = nil
	f.submitted = nil
}

func (f *WithdrawFlow) State() WithdrawFlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FieldErrors returns the error set from the last submission attempt.
func (f *WithdrawFlow) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submitted returns the transaction created by a successful submission.
func (f *WithdrawFlow) Submitted() *Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitted == nil {
		return nil
	}
	tx := *f.submitted
	return &tx
}

// Submit validates the whole form against the authoritative balance and,
// when clean, sends the withdrawal. Validation failures block submission
// with the full error set and never reach the network.
func (f *WithdrawFlow) Submit(ctx context.Context, form WithdrawForm) error {
	f.mu.Lock()
	if f.state != WithdrawStateForm {
		f.mu.Unlock()
		return newValidationError("withdrawal already submitted")
	}
	f.mu.Unlock()

	balance := f.gw.Store().Balance()
	if errs := form.Validate(balance); len(errs) > 0 {
		f.mu.Lock()
		f.errors = errs
		f.mu.Unlock()
		return newValidationError("please fix the highlighted fields")
	}

	tx, err := f.gw.CreateWithdrawalRequest(ctx, form.Amount, BankDetails{
		AccountNumber:     form.AccountNumber,
		IFSCCode:          strings.ToUpper(strings.TrimSpace(form.IFSCCode)),
		AccountHolderName: strings.TrimSpace(form.AccountHolderName),
		BankName:          strings.TrimSpace(form.BankName),
	})
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.state = WithdrawStateSuccess
	f.errors = nil
	f.submitted = tx
	f.mu.Unlock()
	return nil
}
