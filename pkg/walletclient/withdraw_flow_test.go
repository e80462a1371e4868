package walletclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() WithdrawForm {
	return WithdrawForm{
		Amount:               500,
		AccountNumber:        "123456789",
		ConfirmAccountNumber: "123456789",
		IFSCCode:             "SBIN0001234",
		AccountHolderName:    "Asha Rao",
		BankName:             "State Bank of India",
	}
}

func TestWithdrawFormValidateAmountBounds(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		balance float64
		wantErr bool
	}{
		{"below minimum", 99, 10000, true},
		{"at minimum", 100, 10000, false},
		{"above balance", 5001, 5000, true},
		{"at balance", 5000, 5000, false},
		{"above hard cap even with big balance", 50001, 100000, true},
		{"at hard cap", 50000, 100000, false},
		{"zero", 0, 10000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Amount = tt.amount
			errs := form.Validate(tt.balance)
			if tt.wantErr {
				assert.Contains(t, errs, "amount")
			} else {
				assert.NotContains(t, errs, "amount")
			}
		})
	}
}

func TestWithdrawFormValidateIFSC(t *testing.T) {
	tests := []struct {
		code string
		ok   bool
	}{
		{"SBIN0001234", true},
		{"SBIN1001234", false}, // 5th char must be '0'
		{"sbin0001234", true},  // normalized to uppercase
		{"SBIN000123", false},  // too short
		{"SBIN00012345", false},
		{"1BIN0001234", false},
		{"", false},
	}

	for _, tt := range tests {
		form := validForm()
		form.IFSCCode = tt.code
		errs := form.Validate(10000)
		if tt.ok {
			assert.NotContains(t, errs, "ifscCode", "IFSC %q should pass", tt.code)
		} else {
			assert.Contains(t, errs, "ifscCode", "IFSC %q should fail", tt.code)
		}
	}
}

func TestWithdrawFormValidateAccountNumber(t *testing.T) {
	tests := []struct {
		number string
		ok     bool
	}{
		{"12345678", false}, // 8 digits
		{"123456789", true}, // 9 digits
		{"123456789012345678", true},  // 18 digits
		{"1234567890123456789", false}, // 19 digits
		{"12345678a", false},
		{"", false},
	}

	for _, tt := range tests {
		form := validForm()
		form.AccountNumber = tt.number
		form.ConfirmAccountNumber = tt.number
		errs := form.Validate(10000)
		if tt.ok {
			assert.NotContains(t, errs, "accountNumber", "account %q should pass", tt.number)
		} else {
			assert.Contains(t, errs, "accountNumber", "account %q should fail", tt.number)
		}
	}
}

func TestWithdrawFormValidateComputesFullErrorSet(t *testing.T) {
	form := WithdrawForm{
		Amount:               5,
		AccountNumber:        "123",
		ConfirmAccountNumber: "456",
		IFSCCode:             "bad",
		AccountHolderName:    "A",
		BankName:             "  ",
	}

	errs := form.Validate(10000)

	// Every failing field reports at once, not first-error-wins.
	for _, field := range []string{
		"amount", "accountNumber", "confirmAccountNumber",
		"ifscCode", "accountHolderName", "bankName",
	} {
		assert.Contains(t, errs, field)
	}
}

func TestWithdrawFlowBlockedSubmissionNeverReachesNetwork(t *testing.T) {
	var hits int
	gw, store := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	store.ApplyWalletDetails(&Wallet{Balance: 10000}, nil)

	flow := NewWithdrawFlow(gw)
	flow.Open()

	form := validForm()
	form.Amount = 50
	err := flow.Submit(context.Background(), form)
	require.Error(t, err)

	assert.Equal(t, WithdrawStateForm, flow.State())
	assert.Contains(t, flow.FieldErrors(), "amount")
	assert.Zero(t, hits)
}

func TestWithdrawFlowSuccess(t *testing.T) {
	gw, store := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"transaction": map[string]interface{}{
					"id": 42, "type": TypeWithdrawal, "status": StatusPending, "amount": -500.0,
				},
			},
		})
	}))
	store.ApplyWalletDetails(&Wallet{Balance: 10000}, nil)
	store.ApplyTransactionPage([]Transaction{{ID: 1}}, 1, 1, 1)

	flow := NewWithdrawFlow(gw)
	flow.Open()

	require.NoError(t, flow.Submit(context.Background(), validForm()))

	assert.Equal(t, WithdrawStateSuccess, flow.State(), "flow does not auto-close")
	require.NotNil(t, flow.Submitted(), "submitted transaction stays visible")
	assert.Equal(t, uint(42), flow.Submitted().ID)

	page := store.TransactionPage()
	assert.Equal(t, uint(42), page.Items[0].ID)
	assert.Equal(t, 10000.0, store.Balance(), "balance untouched until refetch")
	assert.Empty(t, flow.FieldErrors())
}
