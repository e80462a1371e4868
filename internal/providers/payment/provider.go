// Package payment adapts the external payment gateway behind a narrow
// interface. Order creation and signature verification are the only two
// touch points the wallet service needs; everything else about the
// gateway's protocol stays on the provider's side.
package payment

import (
	"context"
	"errors"
)

var (
	ErrOrderCreation    = errors.New("payment provider order creation failed")
	ErrInvalidSignature = errors.New("payment signature verification failed")
)

// Order is a provider-side deposit order awaiting payment.
type Order struct {
	ID       string
	Amount   float64
	Currency string
	Receipt  string
	// ClientPayload is handed to the paying client untouched; its shape
	// is provider-specific.
	ClientPayload map[string]string
}

// VerificationPayload is what the client reports back after paying.
type VerificationPayload struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Provider is the seam to the external payment gateway.
type Provider interface {
	// CreateOrder registers a deposit order with the gateway.
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error)

	// VerifySignature checks that a client-reported payment payload was
	// really issued by the gateway for the given order.
	VerifySignature(payload VerificationPayload) error
}
