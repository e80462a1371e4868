package repositories

import (
	"context"
	"fmt"

	"arenapay/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetByUserIDForUpdate(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Set("gorm:for_update", true).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	result := r.db.Save(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.Transaction) error {
	result := r.db.Create(tx)
	if result.Error != nil {
		return fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetTransactionByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidTransaction
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *walletRepository) UpdateTransactionStatus(id uint, status string) error {
	result := r.db.Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvalidTransaction
	}
	return nil
}

func (r *walletRepository) ClaimDepositOrder(orderID string) error {
	result := r.db.Model(&models.DepositOrder{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusCreated).
		Update("status", models.OrderStatusPaid)
	if result.Error != nil {
		return fmt.Errorf("failed to claim deposit order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderConflict
	}
	return nil
}

func (r *walletRepository) GetTransactionPage(ctx context.Context, userID uint, limit, offset int, txType string) ([]models.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if txType != "" {
		query = query.Where("type = ?", txType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []models.Transaction
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transaction page: %w", err)
	}

	return transactions, total, nil
}

func (r *walletRepository) GetStats(ctx context.Context, userID uint) (*models.WalletStats, error) {
	type row struct {
		Type  string
		Total float64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(ABS(amount)), 0) AS total").
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusCompleted).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate wallet stats: %w", err)
	}

	stats := &models.WalletStats{}
	for _, rw := range rows {
		switch rw.Type {
		case models.TransactionTypeDeposit:
			stats.TotalDeposits = rw.Total
		case models.TransactionTypeWithdrawal:
			stats.TotalWithdrawals = rw.Total
		case models.TransactionTypePrizeWin:
			stats.TotalWinnings = rw.Total
		case models.TransactionTypeTournamentFee:
			stats.TotalSpent = rw.Total
		}
	}
	return stats, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
