package wallet

import (
	"context"
	"errors"
	"testing"

	"arenapay/internal/models"
	"arenapay/internal/providers/payment"
	"arenapay/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Create(wallet *models.Wallet) error {
	return m.Called(wallet).Error(0)
}

func (m *MockWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepo) ClaimDepositOrder(orderID string) error {
	return m.Called(orderID).Error(0)
}

func (m *MockWalletRepo) Update(wallet *models.Wallet) error {
	return m.Called(wallet).Error(0)
}

func (m *MockWalletRepo) CreateTransaction(tx *models.Transaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockWalletRepo) GetTransactionByID(id uint) (*models.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockWalletRepo) UpdateTransactionStatus(id uint, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *MockWalletRepo) GetTransactionPage(ctx context.Context, userID uint, limit, offset int, txType string) ([]models.Transaction, int64, error) {
	args := m.Called(userID, limit, offset, txType)
	var items []models.Transaction
	if args.Get(0) != nil {
		items = args.Get(0).([]models.Transaction)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockWalletRepo) GetStats(ctx context.Context, userID uint) (*models.WalletStats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WalletStats), args.Error(1)
}

func (m *MockWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	m.Called()
	return fn(m)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(order *models.DepositOrder) error {
	return m.Called(order).Error(0)
}

func (m *MockOrderRepo) GetByID(id string) (*models.DepositOrder, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DepositOrder), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(id string, status string) error {
	return m.Called(id, status).Error(0)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*payment.Order, error) {
	args := m.Called(amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockProvider) VerifySignature(payload payment.VerificationPayload) error {
	return m.Called(payload).Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTestService(repo *MockWalletRepo, orders *MockOrderRepo, provider *MockProvider) Service {
	return NewService(repo, orders, nil, provider, Config{}, nil, quietLogger())
}

func TestCreateDepositOrder(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		setupMock func(*MockWalletRepo, *MockOrderRepo, *MockProvider)
		wantErr   error
	}{
		{
			name:   "amount below minimum rejected before provider call",
			amount: 9,
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "amount above maximum rejected before provider call",
			amount: 50001,
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "successful order",
			amount: 500,
			setupMock: func(repo *MockWalletRepo, orders *MockOrderRepo, provider *MockProvider) {
				repo.On("GetByUserID", uint(1)).Return(&models.Wallet{UserID: 1, Status: "active"}, nil)
				provider.On("CreateOrder", 500.0, "INR").Return(&payment.Order{ID: "order_1"}, nil)
				orders.On("Create", mock.MatchedBy(func(o *models.DepositOrder) bool {
					return o.ID == "order_1" && o.Amount == 500 && o.Status == models.OrderStatusCreated
				})).Return(nil)
			},
		},
		{
			name:   "locked wallet rejected",
			amount: 500,
			setupMock: func(repo *MockWalletRepo, orders *MockOrderRepo, provider *MockProvider) {
				repo.On("GetByUserID", uint(1)).Return(&models.Wallet{UserID: 1, Status: "locked"}, nil)
			},
			wantErr: ErrWalletLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWalletRepo)
			orders := new(MockOrderRepo)
			provider := new(MockProvider)
			if tt.setupMock != nil {
				tt.setupMock(repo, orders, provider)
			}

			svc := newTestService(repo, orders, provider)
			order, err := svc.CreateDepositOrder(context.Background(), 1, tt.amount)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				provider.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "order_1", order.ID)
			}
			repo.AssertExpectations(t)
			orders.AssertExpectations(t)
			provider.AssertExpectations(t)
		})
	}
}

func TestVerifyDeposit(t *testing.T) {
	payload := payment.VerificationPayload{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}

	t.Run("bad signature marks order failed", func(t *testing.T) {
		repo := new(MockWalletRepo)
		orders := new(MockOrderRepo)
		provider := new(MockProvider)

		orders.On("GetByID", "order_1").Return(&models.DepositOrder{
			ID: "order_1", UserID: 1, Amount: 500, Status: models.OrderStatusCreated,
		}, nil)
		provider.On("VerifySignature", payload).Return(payment.ErrInvalidSignature)
		orders.On("UpdateStatus", "order_1", models.OrderStatusFailed).Return(nil)

		svc := newTestService(repo, orders, provider)
		err := svc.VerifyDeposit(context.Background(), 1, payload)

		assert.ErrorIs(t, err, ErrVerificationFailed)
		orders.AssertExpectations(t)
		repo.AssertNotCalled(t, "ExecuteInTransaction")
	})

	t.Run("success credits wallet and writes completed entry", func(t *testing.T) {
		repo := new(MockWalletRepo)
		orders := new(MockOrderRepo)
		provider := new(MockProvider)

		orders.On("GetByID", "order_1").Return(&models.DepositOrder{
			ID: "order_1", UserID: 1, Amount: 500, Status: models.OrderStatusCreated, Receipt: "dep_x",
		}, nil)
		provider.On("VerifySignature", payload).Return(nil)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("ClaimDepositOrder", "order_1").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 100, Status: "active"}, nil)
		repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
			return w.Balance == 600
		})).Return(nil)
		repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeDeposit &&
				tx.Amount == 500 &&
				tx.Status == models.TransactionStatusCompleted &&
				tx.BalanceAfter == 600
		})).Return(nil)

		svc := newTestService(repo, orders, provider)
		err := svc.VerifyDeposit(context.Background(), 1, payload)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("concurrent verification loses the claim and credits nothing", func(t *testing.T) {
		repo := new(MockWalletRepo)
		orders := new(MockOrderRepo)
		provider := new(MockProvider)

		// The order still reads as created, but another verification claims
		// it inside its own transaction first.
		orders.On("GetByID", "order_1").Return(&models.DepositOrder{
			ID: "order_1", UserID: 1, Amount: 500, Status: models.OrderStatusCreated,
		}, nil)
		provider.On("VerifySignature", payload).Return(nil)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("ClaimDepositOrder", "order_1").Return(repositories.ErrOrderConflict)

		svc := newTestService(repo, orders, provider)
		err := svc.VerifyDeposit(context.Background(), 1, payload)

		assert.ErrorIs(t, err, ErrOrderAlreadyPaid)
		repo.AssertNotCalled(t, "Update", mock.Anything)
		repo.AssertNotCalled(t, "CreateTransaction", mock.Anything)
	})

	t.Run("order owned by someone else is not found", func(t *testing.T) {
		repo := new(MockWalletRepo)
		orders := new(MockOrderRepo)
		provider := new(MockProvider)

		orders.On("GetByID", "order_1").Return(&models.DepositOrder{
			ID: "order_1", UserID: 2, Status: models.OrderStatusCreated,
		}, nil)

		svc := newTestService(repo, orders, provider)
		err := svc.VerifyDeposit(context.Background(), 1, payload)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("already processed order rejected", func(t *testing.T) {
		repo := new(MockWalletRepo)
		orders := new(MockOrderRepo)
		provider := new(MockProvider)

		orders.On("GetByID", "order_1").Return(&models.DepositOrder{
			ID: "order_1", UserID: 1, Status: models.OrderStatusPaid,
		}, nil)

		svc := newTestService(repo, orders, provider)
		err := svc.VerifyDeposit(context.Background(), 1, payload)

		assert.ErrorIs(t, err, ErrOrderAlreadyPaid)
	})
}

func TestWithdraw(t *testing.T) {
	bank := models.BankAccount{
		AccountNumber:     "123456789",
		IFSC:              "SBIN0001234",
		AccountHolderName: "Asha Rao",
		BankName:          "SBI",
	}

	t.Run("invalid bank details return full error set without touching the ledger", func(t *testing.T) {
		repo := new(MockWalletRepo)
		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))

		_, err := svc.Withdraw(context.Background(), 1, 500, models.BankAccount{
			AccountNumber: "123", IFSC: "bad",
		})

		var bankErr *BankDetailsError
		require.ErrorAs(t, err, &bankErr)
		assert.Contains(t, bankErr.Fields, "account_number")
		assert.Contains(t, bankErr.Fields, "ifsc_code")
		assert.Contains(t, bankErr.Fields, "account_holder_name")
		assert.Contains(t, bankErr.Fields, "bank_name")
		repo.AssertNotCalled(t, "ExecuteInTransaction")
	})

	t.Run("insufficient balance", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 300, Status: "active"}, nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		_, err := svc.Withdraw(context.Background(), 1, 500, bank)

		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("below minimum", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 10000, Status: "active"}, nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		_, err := svc.Withdraw(context.Background(), 1, 99, bank)

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("success holds funds as pending entry under a locked read", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 2000, Status: "active"}, nil)
		repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
			return w.Balance == 1500
		})).Return(nil)
		repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeWithdrawal &&
				tx.Amount == -500 &&
				tx.Status == models.TransactionStatusPending &&
				tx.BalanceAfter == 1500
		})).Return(nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		tx, err := svc.Withdraw(context.Background(), 1, 500, bank)

		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, tx.Status)
		assert.Equal(t, -500.0, tx.Amount)
		// The debit must read through the locked variant so two concurrent
		// withdrawals cannot both pass the sufficiency check.
		repo.AssertNotCalled(t, "GetByUserID", mock.Anything)
		repo.AssertExpectations(t)
	})
}

func TestGetTransactionHistory(t *testing.T) {
	t.Run("invalid filter", func(t *testing.T) {
		svc := newTestService(new(MockWalletRepo), new(MockOrderRepo), new(MockProvider))
		_, err := svc.GetTransactionHistory(context.Background(), 1, HistoryOptions{Page: 1, Limit: 10, Type: "jackpot"})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("page math", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetTransactionPage", uint(1), 10, 10, "deposit").
			Return([]models.Transaction{{ID: 11}}, int64(25), nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		page, err := svc.GetTransactionHistory(context.Background(), 1, HistoryOptions{
			Page: 2, Limit: 10, Type: "deposit",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, int64(25), page.TotalCount)
		repo.AssertExpectations(t)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetTransactionPage", uint(1), 100, 0, "").
			Return([]models.Transaction{}, int64(0), nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		_, err := svc.GetTransactionHistory(context.Background(), 1, HistoryOptions{Page: 1, Limit: 500})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestCheckBalance(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetByUserID", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 300, Status: "active"}, nil)

	svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))

	check, err := svc.CheckBalance(context.Background(), 1, 500)
	require.NoError(t, err)
	assert.False(t, check.Sufficient)
	assert.Equal(t, 300.0, check.Balance)
	assert.Equal(t, 200.0, check.Shortfall)

	check, err = svc.CheckBalance(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.True(t, check.Sufficient)
	assert.Zero(t, check.Shortfall)

	_, err = svc.CheckBalance(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTournamentLedgerProducers(t *testing.T) {
	t.Run("fee requires sufficient balance", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 50, Status: "active"}, nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		_, err := svc.ChargeTournamentFee(context.Background(), 1, 100, "t-9", "BGMI entry")

		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("prize credit writes completed entry with reference", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 100, Status: "active"}, nil)
		repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
			return w.Balance == 1100
		})).Return(nil)
		repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypePrizeWin &&
				tx.Amount == 1000 &&
				tx.Status == models.TransactionStatusCompleted &&
				tx.Reference == "t-9"
		})).Return(nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		tx, err := svc.CreditPrize(context.Background(), 1, 1000, "t-9", "1st place")

		require.NoError(t, err)
		assert.Equal(t, 1100.0, tx.BalanceAfter)
		repo.AssertExpectations(t)
	})
}

func TestGetDetails(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetByUserID", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 750, Status: "active"}, nil)
	repo.On("GetStats", uint(1)).Return(&models.WalletStats{TotalDeposits: 1000, TotalSpent: 250}, nil)

	svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
	details, err := svc.GetDetails(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 750.0, details.Wallet.Balance)
	assert.Equal(t, 1000.0, details.Stats.TotalDeposits)
}

func TestGetDetailsWalletMissing(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetByUserID", uint(7)).Return(nil, repositories.ErrWalletNotFound)

	svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
	_, err := svc.GetDetails(context.Background(), 7)

	assert.True(t, errors.Is(err, ErrWalletNotFound))
}

func TestSettleWithdrawal(t *testing.T) {
	t.Run("marks pending withdrawal completed", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetTransactionByID", uint(42)).Return(&models.Transaction{
			ID: 42, UserID: 1,
			Type:   models.TransactionTypeWithdrawal,
			Amount: -500, Status: models.TransactionStatusPending,
		}, nil)
		repo.On("UpdateTransactionStatus", uint(42), models.TransactionStatusCompleted).Return(nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		err := svc.SettleWithdrawal(context.Background(), 42)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non-withdrawal entries", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetTransactionByID", uint(43)).Return(&models.Transaction{
			ID: 43, UserID: 1,
			Type:   models.TransactionTypeDeposit,
			Amount: 500, Status: models.TransactionStatusCompleted,
		}, nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		err := svc.SettleWithdrawal(context.Background(), 43)

		assert.True(t, errors.Is(err, ErrNotPendingPayout))
		repo.AssertNotCalled(t, "UpdateTransactionStatus")
	})

	t.Run("unknown transaction", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("GetTransactionByID", uint(99)).Return(nil, repositories.ErrInvalidTransaction)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		err := svc.SettleWithdrawal(context.Background(), 99)

		assert.True(t, errors.Is(err, ErrTransactionNotFound))
	})
}

func TestRefundWithdrawal(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetTransactionByID", uint(42)).Return(&models.Transaction{
		ID: 42, UserID: 1,
		Type:   models.TransactionTypeWithdrawal,
		Amount: -500, Status: models.TransactionStatusPending,
	}, nil)
	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 1500, Status: "active"}, nil)
	repo.On("UpdateTransactionStatus", uint(42), models.TransactionStatusCancelled).Return(nil)
	repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
		return w.Balance == 2000
	})).Return(nil)
	repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Type == models.TransactionTypeRefund &&
			tx.Amount == 500 &&
			tx.Status == models.TransactionStatusCompleted &&
			tx.BalanceAfter == 2000
	})).Return(nil)

	svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
	refund, err := svc.RefundWithdrawal(context.Background(), 42, "Bank rejected account")

	require.NoError(t, err)
	assert.Equal(t, "Bank rejected account", refund.Description)
	repo.AssertExpectations(t)
}

func TestGrantBonus(t *testing.T) {
	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := newTestService(new(MockWalletRepo), new(MockOrderRepo), new(MockProvider))
		_, err := svc.GrantBonus(context.Background(), 1, 0, "promo")
		assert.True(t, errors.Is(err, ErrInvalidAmount))
	})

	t.Run("credits a completed bonus entry", func(t *testing.T) {
		repo := new(MockWalletRepo)
		repo.On("ExecuteInTransaction").Return(nil)
		repo.On("GetByUserIDForUpdate", uint(1)).Return(&models.Wallet{UserID: 1, Balance: 0, Status: "active"}, nil)
		repo.On("Update", mock.MatchedBy(func(w *models.Wallet) bool {
			return w.Balance == 50
		})).Return(nil)
		repo.On("CreateTransaction", mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.Type == models.TransactionTypeBonus && tx.Amount == 50
		})).Return(nil)

		svc := newTestService(repo, new(MockOrderRepo), new(MockProvider))
		tx, err := svc.GrantBonus(context.Background(), 1, 50, "Signup bonus")

		require.NoError(t, err)
		assert.Equal(t, 50.0, tx.BalanceAfter)
	})
}
