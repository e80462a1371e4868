package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"arenapay/internal/models"
	"arenapay/internal/providers/payment"
	"arenapay/internal/repositories"
	"arenapay/internal/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type service struct {
	repo     repositories.WalletRepository
	orders   repositories.DepositOrderRepository
	cache    WalletCache
	provider payment.Provider
	config   Config
	metrics  MetricsCollector
	logger   *logrus.Logger
}

// NewService creates a new wallet service
func NewService(
	repo repositories.WalletRepository,
	orders repositories.DepositOrderRepository,
	cache WalletCache,
	provider payment.Provider,
	config Config,
	metrics MetricsCollector,
	logger *logrus.Logger,
) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if orders == nil {
		panic("deposit order repository is required")
	}
	if provider == nil {
		panic("payment provider is required")
	}

	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	if config.MinDeposit == 0 {
		config.MinDeposit = validation.MinDepositAmount
	}
	if config.MaxDeposit == 0 {
		config.MaxDeposit = validation.MaxDepositAmount
	}
	if config.MinWithdrawal == 0 {
		config.MinWithdrawal = validation.MinWithdrawalAmount
	}
	if config.MaxWithdrawal == 0 {
		config.MaxWithdrawal = validation.MaxWithdrawalAmount
	}
	if config.MaxPageLimit == 0 {
		config.MaxPageLimit = validation.MaxPageLimit
	}
	if config.ProcessingTimeout == 0 {
		config.ProcessingTimeout = DefaultTimeout
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &service{
		repo:     repo,
		orders:   orders,
		cache:    cache,
		provider: provider,
		config:   config,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *service) GetDetails(ctx context.Context, userID uint) (*Details, error) {
	wallet, err := s.getWallet(ctx, userID)
	if err != nil {
		s.metrics.RecordError(opGetDetails, "wallet_lookup")
		return nil, err
	}

	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		s.metrics.RecordError(opGetDetails, "stats")
		return nil, fmt.Errorf("failed to get wallet stats: %w", err)
	}

	s.metrics.RecordOperationResult(opGetDetails, "success")
	return &Details{Wallet: wallet, Stats: stats}, nil
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, opts HistoryOptions) (*TransactionPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = validation.DefaultPageLimit
	}
	if opts.Limit > s.config.MaxPageLimit {
		opts.Limit = s.config.MaxPageLimit
	}
	if opts.Type != "" && !models.ValidTransactionType(opts.Type) {
		return nil, ErrInvalidFilter
	}

	offset := (opts.Page - 1) * opts.Limit
	items, total, err := s.repo.GetTransactionPage(ctx, userID, opts.Limit, offset, opts.Type)
	if err != nil {
		s.metrics.RecordError(opHistory, "query")
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}

	totalPages := int(total) / opts.Limit
	if int(total)%opts.Limit > 0 {
		totalPages++
	}

	return &TransactionPage{
		Items:       items,
		CurrentPage: opts.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
	}, nil
}

func (s *service) CheckBalance(ctx context.Context, userID uint, amount float64) (*BalanceCheck, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	wallet, err := s.getWallet(ctx, userID)
	if err != nil {
		s.metrics.RecordError(opCheckBalance, "wallet_lookup")
		return nil, err
	}

	check := &BalanceCheck{
		Sufficient: wallet.Balance >= amount,
		Balance:    wallet.Balance,
	}
	if !check.Sufficient {
		check.Shortfall = amount - wallet.Balance
	}
	s.metrics.RecordOperationResult(opCheckBalance, "success")
	return check, nil
}

func (s *service) CreateDepositOrder(ctx context.Context, userID uint, amount float64) (*models.DepositOrder, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opCreateOrder, time.Since(start)) }()

	if err := validation.ValidateDepositAmount(amount); err != nil {
		s.metrics.RecordError(opCreateOrder, "invalid_amount")
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	wallet, err := s.getWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Status != models.WalletStatusActive {
		return nil, ErrWalletLocked
	}

	receipt := "dep_" + uuid.NewString()

	providerCtx, cancel := context.WithTimeout(ctx, s.config.ProcessingTimeout)
	defer cancel()

	providerOrder, err := s.provider.CreateOrder(providerCtx, amount, s.config.Currency, receipt)
	if err != nil {
		s.metrics.RecordError(opCreateOrder, "provider")
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  amount,
		}).WithError(err).Error("deposit order creation failed")
		return nil, err
	}

	order := &models.DepositOrder{
		ID:       providerOrder.ID,
		UserID:   userID,
		Amount:   amount,
		Currency: s.config.Currency,
		Receipt:  receipt,
		Status:   models.OrderStatusCreated,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	s.metrics.RecordOperationResult(opCreateOrder, "success")
	return order, nil
}

func (s *service) VerifyDeposit(ctx context.Context, userID uint, payload payment.VerificationPayload) error {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opVerifyDeposit, time.Since(start)) }()

	order, err := s.orders.GetByID(payload.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.UserID != userID {
		return ErrOrderNotFound
	}
	if order.Status != models.OrderStatusCreated {
		return ErrOrderAlreadyPaid
	}

	if err := s.provider.VerifySignature(payload); err != nil {
		s.metrics.RecordError(opVerifyDeposit, "signature")
		if updErr := s.orders.UpdateStatus(order.ID, models.OrderStatusFailed); updErr != nil {
			s.logger.WithError(updErr).Warn("failed to mark deposit order failed")
		}
		return fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	var oldBalance, newBalance float64
	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		// Claim the order first: only one verification may credit it, and
		// the claim must commit together with the credit.
		if err := tx.ClaimDepositOrder(order.ID); err != nil {
			return err
		}

		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}

		oldBalance = wallet.Balance
		wallet.Balance += order.Amount
		newBalance = wallet.Balance
		if err := tx.Update(wallet); err != nil {
			return err
		}

		return tx.CreateTransaction(&models.Transaction{
			UserID:       userID,
			Type:         models.TransactionTypeDeposit,
			Amount:       order.Amount,
			Status:       models.TransactionStatusCompleted,
			BalanceAfter: wallet.Balance,
			Description:  fmt.Sprintf("Wallet deposit of ₹%.0f", order.Amount),
			Reference:    order.Receipt,
			Metadata:     models.JSON{"payment_id": payload.PaymentID},
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrOrderConflict) {
			return ErrOrderAlreadyPaid
		}
		s.metrics.RecordError(opVerifyDeposit, "ledger")
		return fmt.Errorf("failed to credit deposit: %w", err)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordBalanceChange(userID, oldBalance, newBalance)
	s.metrics.RecordTransaction(models.TransactionTypeDeposit, order.Amount)
	s.metrics.RecordOperationResult(opVerifyDeposit, "success")
	return nil
}

func (s *service) Withdraw(ctx context.Context, userID uint, amount float64, bank models.BankAccount) (*models.Transaction, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(opWithdraw, time.Since(start)) }()

	if fieldErrs := validation.ValidateBankAccount(bank); len(fieldErrs) > 0 {
		s.metrics.RecordError(opWithdraw, "bank_details")
		return nil, &BankDetailsError{Fields: fieldErrs}
	}

	var (
		withdrawal *models.Transaction
		oldBalance float64
		newBalance float64
	)
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if wallet.Status != models.WalletStatusActive {
			return ErrWalletLocked
		}

		if amount > wallet.Balance {
			return ErrInsufficientBalance
		}
		if err := validation.ValidateWithdrawalAmount(amount, wallet.Balance); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}

		oldBalance = wallet.Balance
		wallet.Balance -= amount
		newBalance = wallet.Balance
		if err := tx.Update(wallet); err != nil {
			return err
		}

		// Funds are held immediately; the payout settles out of band and
		// flips this entry to completed or refunds it.
		withdrawal = &models.Transaction{
			UserID:       userID,
			Type:         models.TransactionTypeWithdrawal,
			Amount:       -amount,
			Status:       models.TransactionStatusPending,
			BalanceAfter: wallet.Balance,
			Description:  fmt.Sprintf("Withdrawal to %s", bank.BankName),
			Metadata: models.JSON{
				"bank_name":      bank.BankName,
				"account_number": bank.MaskedAccountNumber(),
				"ifsc_code":      validation.NormalizeIFSC(bank.IFSC),
			},
		}
		return tx.CreateTransaction(withdrawal)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrWalletLocked) {
			return nil, err
		}
		s.metrics.RecordError(opWithdraw, "ledger")
		return nil, fmt.Errorf("failed to process withdrawal: %w", err)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordBalanceChange(userID, oldBalance, newBalance)
	s.metrics.RecordTransaction(models.TransactionTypeWithdrawal, amount)
	s.metrics.RecordOperationResult(opWithdraw, "success")
	return withdrawal, nil
}

// SettleWithdrawal marks a pending withdrawal as completed once the payout
// has cleared. The balance was already debited at request time.
func (s *service) SettleWithdrawal(ctx context.Context, transactionID uint) error {
	entry, err := s.pendingWithdrawal(transactionID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateTransactionStatus(entry.ID, models.TransactionStatusCompleted); err != nil {
		s.metrics.RecordError(opSettlePayout, "ledger")
		return fmt.Errorf("failed to settle withdrawal: %w", err)
	}

	s.metrics.RecordOperationResult(opSettlePayout, "success")
	return nil
}

// RefundWithdrawal cancels a pending withdrawal and returns the held funds
// as a refund entry.
func (s *service) RefundWithdrawal(ctx context.Context, transactionID uint, reason string) (*models.Transaction, error) {
	entry, err := s.pendingWithdrawal(transactionID)
	if err != nil {
		return nil, err
	}

	amount := -entry.Amount
	var refund *models.Transaction
	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(entry.UserID)
		if err != nil {
			return err
		}

		if err := tx.UpdateTransactionStatus(entry.ID, models.TransactionStatusCancelled); err != nil {
			return err
		}

		wallet.Balance += amount
		if err := tx.Update(wallet); err != nil {
			return err
		}

		if reason == "" {
			reason = "Withdrawal refunded"
		}
		refund = &models.Transaction{
			UserID:       entry.UserID,
			Type:         models.TransactionTypeRefund,
			Amount:       amount,
			Status:       models.TransactionStatusCompleted,
			BalanceAfter: wallet.Balance,
			Description:  reason,
			Metadata:     models.JSON{"withdrawal_id": entry.ID},
		}
		return tx.CreateTransaction(refund)
	})
	if err != nil {
		s.metrics.RecordError(opRefundPayout, "ledger")
		return nil, fmt.Errorf("failed to refund withdrawal: %w", err)
	}

	s.invalidateWallet(ctx, entry.UserID)
	s.metrics.RecordTransaction(models.TransactionTypeRefund, amount)
	s.metrics.RecordOperationResult(opRefundPayout, "success")
	return refund, nil
}

func (s *service) pendingWithdrawal(transactionID uint) (*models.Transaction, error) {
	entry, err := s.repo.GetTransactionByID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidTransaction) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if entry.Type != models.TransactionTypeWithdrawal || entry.Status != models.TransactionStatusPending {
		return nil, ErrNotPendingPayout
	}
	return entry, nil
}

func (s *service) ChargeTournamentFee(ctx context.Context, userID uint, amount float64, tournamentRef, description string) (*models.Transaction, error) {
	return s.applyLedgerEntry(ctx, userID, -amount, models.TransactionTypeTournamentFee, tournamentRef, description, opChargeFee)
}

func (s *service) CreditPrize(ctx context.Context, userID uint, amount float64, tournamentRef, description string) (*models.Transaction, error) {
	return s.applyLedgerEntry(ctx, userID, amount, models.TransactionTypePrizeWin, tournamentRef, description, opCreditPrize)
}

func (s *service) GrantBonus(ctx context.Context, userID uint, amount float64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Wallet bonus"
	}
	return s.applyLedgerEntry(ctx, userID, amount, models.TransactionTypeBonus, "", description, opGrantBonus)
}

// applyLedgerEntry atomically moves funds and records a completed ledger
// entry. signedAmount is negative for debits.
func (s *service) applyLedgerEntry(ctx context.Context, userID uint, signedAmount float64, txType, reference, description, op string) (*models.Transaction, error) {
	if signedAmount == 0 {
		return nil, ErrInvalidAmount
	}

	var entry *models.Transaction
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.GetByUserIDForUpdate(userID)
		if err != nil {
			return err
		}
		if wallet.Status != models.WalletStatusActive {
			return ErrWalletLocked
		}
		if signedAmount < 0 && wallet.Balance < -signedAmount {
			return ErrInsufficientBalance
		}

		wallet.Balance += signedAmount
		if err := tx.Update(wallet); err != nil {
			return err
		}

		entry = &models.Transaction{
			UserID:       userID,
			Type:         txType,
			Amount:       signedAmount,
			Status:       models.TransactionStatusCompleted,
			BalanceAfter: wallet.Balance,
			Description:  description,
			Reference:    reference,
		}
		return tx.CreateTransaction(entry)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) || errors.Is(err, ErrWalletLocked) {
			return nil, err
		}
		s.metrics.RecordError(op, "ledger")
		return nil, fmt.Errorf("failed to apply %s: %w", txType, err)
	}

	s.invalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(txType, math.Abs(signedAmount))
	s.metrics.RecordOperationResult(op, "success")
	return entry, nil
}

func (s *service) CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error) {
	if currency == "" {
		currency = s.config.Currency
	}
	wallet := &models.Wallet{
		UserID:   userID,
		Status:   models.WalletStatusActive,
		Currency: currency,
	}
	if err := s.repo.Create(wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, wallet); err != nil {
			s.logger.WithError(err).Debug("wallet cache write failed")
		}
	}
	return wallet, nil
}

// getWallet is the cache-first wallet read shared by all read paths.
func (s *service) getWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, ok := s.cache.GetWallet(ctx, userID); ok {
			s.metrics.RecordCacheHit("wallet")
			return wallet, nil
		}
		s.metrics.RecordCacheMiss("wallet")
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.CacheWallet(ctx, wallet); err != nil {
			s.logger.WithError(err).Debug("wallet cache write failed")
		}
	}
	return wallet, nil
}

func (s *service) invalidateWallet(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("wallet cache invalidation failed")
	}
}
