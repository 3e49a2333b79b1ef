package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/mappers"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
	"github.com/faturo-inc/faturo/internal/shared/db"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(database *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: database}
}

func (r *PaymentRepository) Create(ctx context.Context, pay *payment.Payment) error {
	model := mappers.PaymentToModel(pay)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError("payment already exists for charge key")
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return pay.SetID(model.ID)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) GetBySID(ctx context.Context, sid string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment by sid: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) GetByChargeKey(ctx context.Context, chargeKey string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("charge_key = ?", chargeKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment by charge key: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("external_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment not found")
		}
		return nil, fmt.Errorf("failed to get payment by external id: %w", err)
	}

	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) Update(ctx context.Context, pay *payment.Payment) error {
	model := mappers.PaymentToModel(pay)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"refusal_reason": model.RefusalReason,
			"external_id":    model.ExternalID,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("payment was modified concurrently")
	}

	return nil
}

func (r *PaymentRepository) ListBySubscriptionID(ctx context.Context, subscriptionID uint, pagination utils.Pagination) ([]*payment.Payment, utils.PageResult, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.PaymentModel{}).
		Where("subscription_id = ?", subscriptionID).
		Count(&total).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to count payments: %w", err)
	}

	var paymentModels []models.PaymentModel
	if err := conn.
		Where("subscription_id = ?", subscriptionID).
		Order("id DESC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&paymentModels).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to list payments: %w", err)
	}

	payments, err := mappers.PaymentsToDomain(paymentModels)
	if err != nil {
		return nil, utils.PageResult{}, err
	}

	return payments, utils.NewPageResult(pagination, total), nil
}
