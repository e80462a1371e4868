package walletclient

import (
	"context"
	"fmt"
	"sync"
)

// DepositFlowState is the linear deposit modal state.
type DepositFlowState string

const (
	DepositStateAmount     DepositFlowState = "amount"
	DepositStateProcessing DepositFlowState = "processing"
	DepositStateSuccess    DepositFlowState = "success"
)

// QuickDepositAmounts are the one-tap amounts offered in the deposit
// modal.
var QuickDepositAmounts = []float64{100, 200, 500, 1000, 2000, 5000}

// DepositFlow controls the deposit modal: amount → processing → success,
// no backward transitions except the implicit reset when the modal
// reopens. Submission creates the provider order; the flow reaches
// success only when the payment confirmation verifies server-side, never
// on a timer.
type DepositFlow struct {
	gw *Gateway

	mu      sync.Mutex
	state   DepositFlowState
	amount  float64
	message string
}

func NewDepositFlow(gw *Gateway) *DepositFlow {
	return &DepositFlow{gw: gw, state: DepositStateAmount}
}

// Open resets the flow to the amount step. Call on every modal open.
func (f *DepositFlow) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = DepositStateAmount
	f.amount = 0
	f.message = ""
}

// Close abandons the flow and clears any pending order.
func (f *DepositFlow) Close() {
	f.mu.Lock()
	f.state = DepositStateAmount
	f.amount = 0
	f.message = ""
	f.mu.Unlock()
	f.gw.Store().ClearPendingOrder()
}

func (f *DepositFlow) State() DepositFlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message returns the current validation or success message.
func (f *DepositFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit validates the amount and creates the deposit order. Validation
// failures keep the flow in the amount step and never reach the network.
// A gateway rejection returns the flow to the amount step.
func (f *DepositFlow) Submit(ctx context.Context, amount float64) error {
	f.mu.Lock()
	if f.state != DepositStateAmount {
		f.mu.Unlock()
		return newValidationError("deposit already in progress")
	}
	if amount < MinDepositAmount || amount > MaxDepositAmount {
		f.message = fmt.Sprintf("Enter an amount between %s and %s",
			FormatINR(MinDepositAmount), FormatINR(MaxDepositAmount))
		msg := f.message
		f.mu.Unlock()
		return newValidationError(msg)
	}
	f.state = DepositStateProcessing
	f.amount = amount
	f.message = ""
	f.mu.Unlock()

	if _, err := f.gw.CreateDepositOrder(ctx, amount); err != nil {
		f.mu.Lock()
		f.state = DepositStateAmount
		f.message = f.gw.Store().Status(KeyDeposit).Error
		f.mu.Unlock()
		return err
	}
	return nil
}

// Confirm reports the payment result back for verification. On success
// the flow reaches the success step and the wallet details are
// refreshed; the balance is never taken from client-reported amounts.
func (f *DepositFlow) Confirm(ctx context.Context, payload VerificationPayload) error {
	f.mu.Lock()
	if f.state != DepositStateProcessing {
		f.mu.Unlock()
		return newValidationError("no deposit awaiting confirmation")
	}
	amount := f.amount
	f.mu.Unlock()

	if err := f.gw.VerifyPayment(ctx, payload); err != nil {
		f.mu.Lock()
		f.state = DepositStateAmount
		f.message = f.gw.Store().Status(KeyDeposit).Error
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.state = DepositStateSuccess
	f.message = fmt.Sprintf("%s added to your wallet", FormatINR(amount))
	f.mu.Unlock()

	// Refresh the authoritative balance; a failure here leaves its error
	// under the wallet key without disturbing the completed deposit.
	_ = f.gw.FetchWalletDetails(ctx)
	return nil
}
