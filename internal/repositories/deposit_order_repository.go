package repositories

import (
	"fmt"

	"arenapay/internal/models"

	"gorm.io/gorm"
)

type depositOrderRepository struct {
	db *gorm.DB
}

func NewDepositOrderRepository(db *gorm.DB) DepositOrderRepository {
	return &depositOrderRepository{db: db}
}

func (r *depositOrderRepository) Create(order *models.DepositOrder) error {
	result := r.db.Create(order)
	if result.Error != nil {
		return fmt.Errorf("failed to create deposit order: %w", result.Error)
	}
	return nil
}

func (r *depositOrderRepository) GetByID(id string) (*models.DepositOrder, error) {
	var order models.DepositOrder
	if err := r.db.Where("id = ?", id).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get deposit order: %w", err)
	}
	return &order, nil
}

func (r *depositOrderRepository) UpdateStatus(id string, status string) error {
	result := r.db.Model(&models.DepositOrder{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update deposit order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
