package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
)

// StripeProvider creates deposit orders as Stripe PaymentIntents and
// verifies client-reported payments with an HMAC-SHA256 signature over
// "orderID|paymentID" keyed by the webhook secret.
type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider configures the global stripe key and returns the
// provider. secretKey authenticates API calls; webhookSecret signs and
// verifies payment confirmations.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

func (p *StripeProvider) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		// Stripe amounts are in the currency's smallest unit
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("receipt", receipt)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreation, err)
	}

	return &Order{
		ID:       intent.ID,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		ClientPayload: map[string]string{
			"client_secret": intent.ClientSecret,
		},
	}, nil
}

func (p *StripeProvider) VerifySignature(payload VerificationPayload) error {
	if payload.OrderID == "" || payload.PaymentID == "" || payload.Signature == "" {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(p.webhookSecret))
	mac.Write([]byte(payload.OrderID + "|" + payload.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(payload.Signature)) {
		return ErrInvalidSignature
	}
	return nil
}
