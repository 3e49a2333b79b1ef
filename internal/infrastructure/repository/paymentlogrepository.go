package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/mappers"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
	"github.com/faturo-inc/faturo/internal/shared/db"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type PaymentLogRepository struct {
	db *gorm.DB
}

func NewPaymentLogRepository(database *gorm.DB) *PaymentLogRepository {
	return &PaymentLogRepository{db: database}
}

func (r *PaymentLogRepository) Create(ctx context.Context, log *payment.PaymentLog) error {
	model := mappers.PaymentLogToModel(log)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment log: %w", err)
	}

	return log.SetID(model.ID)
}

func (r *PaymentLogRepository) ListByPaymentID(ctx context.Context, paymentID uint, pagination utils.Pagination) ([]*payment.PaymentLog, utils.PageResult, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.PaymentLogModel{}).
		Where("payment_id = ?", paymentID).
		Count(&total).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to count payment logs: %w", err)
	}

	var logModels []models.PaymentLogModel
	if err := conn.
		Where("payment_id = ?", paymentID).
		Order("id ASC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&logModels).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to list payment logs: %w", err)
	}

	return mappers.PaymentLogsToDomain(logModels), utils.NewPageResult(pagination, total), nil
}
