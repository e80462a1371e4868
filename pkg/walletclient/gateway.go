package walletclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultRequestTimeout bounds every gateway call.
const DefaultRequestTimeout = 10 * time.Second

// Config wires the gateway to its deployment.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.example.com/api".
	BaseURL string
	// TokenSource returns the current bearer token from persisted client
	// storage. Called once per request.
	TokenSource func() string
	// HTTPClient overrides the default transport. Its timeout is applied
	// as-is when set.
	HTTPClient *http.Client
	// Logger receives structured request/failure logs. Defaults to a
	// standard logrus logger.
	Logger *logrus.Logger
}

// Gateway performs the remote wallet operations and folds every result
// and error back into the store. Failures never escape as panics or
// uncaught errors: each operation returns the typed *APIError it stored.
type Gateway struct {
	cfg    Config
	client *http.Client
	logger *logrus.Logger
	store  *Store
}

func NewGateway(cfg Config, store *Store) *Gateway {
	if store == nil {
		panic("store is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultRequestTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Gateway{
		cfg:    cfg,
		client: client,
		logger: logger,
		store:  store,
	}
}

// Store returns the store this gateway mutates.
func (g *Gateway) Store() *Store { return g.store }

// envelope is the wire-level response convention.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// FetchWalletDetails refreshes balance and stats. Idempotent, safe to
// retry.
func (g *Gateway) FetchWalletDetails(ctx context.Context) error {
	key := KeyWallet
	g.store.BeginRequest(key)

	var data struct {
		Wallet *Wallet      `json:"wallet"`
		Stats  *WalletStats `json:"stats"`
	}
	if err := g.do(ctx, http.MethodGet, "/wallet", nil, &data); err != nil {
		return g.fail(key, err)
	}

	g.store.ApplyWalletDetails(data.Wallet, data.Stats)
	g.store.FinishRequest(key)
	return nil
}

// FetchTransactionHistory replaces the transaction page. page must be
// ≥ 1 and limit > 0; txType may be empty. A response superseded by a
// later fetch is dropped silently.
func (g *Gateway) FetchTransactionHistory(ctx context.Context, page, limit int, txType string) error {
	key := KeyTransactions
	if page < 1 {
		return g.fail(key, newValidationError("page must be at least 1"))
	}
	if limit <= 0 {
		return g.fail(key, newValidationError("limit must be positive"))
	}

	seq := g.store.BeginRequest(key)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if txType != "" {
		q.Set("type", txType)
	}

	var data TransactionPage
	err := g.do(ctx, http.MethodGet, "/wallet/transactions?"+q.Encode(), nil, &data)

	if !g.store.StillCurrent(key, seq) {
		// A newer fetch owns the key now; this response must not win.
		g.logger.WithFields(logrus.Fields{
			"page": page, "type": txType,
		}).Debug("dropping superseded transaction fetch")
		return &APIError{Kind: KindCancelled, Message: "superseded"}
	}
	if err != nil {
		return g.fail(key, err)
	}

	g.store.ApplyTransactionPage(data.Items, data.CurrentPage, data.TotalPages, data.TotalCount)
	g.store.FinishRequest(key)
	return nil
}

// CreateDepositOrder registers a deposit with the payment gateway and
// stores the resulting pending order. Amount bounds are the caller's
// responsibility; out-of-range values come back as server rejections.
func (g *Gateway) CreateDepositOrder(ctx context.Context, amount float64) (*PendingOrder, error) {
	key := KeyDeposit
	g.store.BeginRequest(key)

	var data struct {
		Order *PendingOrder `json:"order"`
	}
	body := map[string]float64{"amount": amount}
	if err := g.do(ctx, http.MethodPost, "/wallet/deposit/create-order", body, &data); err != nil {
		return nil, g.fail(key, err)
	}

	g.store.SetPendingOrder(data.Order)
	g.store.FinishRequest(key)
	return data.Order, nil
}

// VerifyPayment reports the provider payload back for verification. On
// success the pending order is cleared. The balance is deliberately left
// alone: callers re-invoke FetchWalletDetails so the server stays the
// only source of the credited amount.
func (g *Gateway) VerifyPayment(ctx context.Context, payload VerificationPayload) error {
	key := KeyDeposit
	g.store.BeginRequest(key)

	if err := g.do(ctx, http.MethodPost, "/wallet/deposit/verify", payload, nil); err != nil {
		return g.fail(key, err)
	}

	g.store.ClearPendingOrder()
	g.store.FinishRequest(key)
	return nil
}

// CreateWithdrawalRequest submits a withdrawal. The returned pending
// transaction is optimistically prepended to the list; the balance is not
// touched until the next FetchWalletDetails.
func (g *Gateway) CreateWithdrawalRequest(ctx context.Context, amount float64, bank BankDetails) (*Transaction, error) {
	key := KeyWithdrawal
	g.store.BeginRequest(key)

	var data struct {
		Transaction *Transaction `json:"transaction"`
	}
	body := map[string]interface{}{
		"amount":       amount,
		"bank_details": bank,
	}
	if err := g.do(ctx, http.MethodPost, "/wallet/withdraw", body, &data); err != nil {
		return nil, g.fail(key, err)
	}

	if data.Transaction != nil {
		g.store.PrependOptimisticTransaction(*data.Transaction)
	}
	g.store.FinishRequest(key)
	return data.Transaction, nil
}

// CheckBalance probes whether the wallet covers amount. Read-only: it
// mutates neither the wallet nor the transaction page.
func (g *Gateway) CheckBalance(ctx context.Context, amount float64) (*BalanceCheck, error) {
	key := KeyBalanceCheck
	g.store.BeginRequest(key)

	var data BalanceCheck
	body := map[string]float64{"amount": amount}
	if err := g.do(ctx, http.MethodPost, "/wallet/check-balance", body, &data); err != nil {
		return nil, g.fail(key, err)
	}

	g.store.SetBalanceCheck(&data)
	g.store.FinishRequest(key)
	return &data, nil
}

// fail records err's display message under key, except for cancelled
// errors which are swallowed. It always returns err.
func (g *Gateway) fail(key OperationKey, err *APIError) error {
	if err.Kind == KindCancelled {
		g.store.FinishRequest(key)
		return err
	}
	g.logger.WithFields(logrus.Fields{
		"operation": string(key),
		"kind":      string(err.Kind),
	}).WithError(err.Cause).Warn("wallet operation failed")
	g.store.FailRequest(key, err.Message)
	return err
}

// do executes one request and decodes the response envelope into out.
func (g *Gateway) do(ctx context.Context, method, path string, body, out interface{}) *APIError {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindValidation, Message: genericFailureMessage, Cause: err}
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(g.cfg.BaseURL, "/")+path, reqBody)
	if err != nil {
		return &APIError{Kind: KindNetwork, Message: genericFailureMessage, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.TokenSource != nil {
		if token := g.cfg.TokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		if resp.StatusCode >= 400 {
			return &APIError{
				Kind:    KindServer,
				Message: genericFailureMessage,
				Cause:   fmt.Errorf("status %d", resp.StatusCode),
			}
		}
		return &APIError{Kind: KindNetwork, Message: genericFailureMessage, Cause: decodeErr}
	}

	if resp.StatusCode >= 400 || !env.Success {
		message := env.Message
		if message == "" {
			message = genericFailureMessage
		}
		return &APIError{
			Kind:    KindServer,
			Message: message,
			Cause:   fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Kind: KindNetwork, Message: genericFailureMessage, Cause: err}
		}
	}
	return nil
}

func classifyTransportError(err error) *APIError {
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindCancelled, Message: "request cancelled", Cause: err}
	}

	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &urlErr) && urlErr.Timeout()) {
		return &APIError{
			Kind:    KindTimeout,
			Message: "The request timed out. Please check your connection and try again.",
			Cause:   err,
		}
	}

	return &APIError{
		Kind:    KindNetwork,
		Message: "Network error. Please check your connection and try again.",
		Cause:   err,
	}
}
