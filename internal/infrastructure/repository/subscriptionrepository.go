package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/mappers"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
	"github.com/faturo-inc/faturo/internal/shared/db"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(database *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: database}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	return sub.SetID(model.ID)
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		return nil, fmt.Errorf("failed to get subscription by sid: %w", err)
	}

	return mappers.SubscriptionToDomain(&model)
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	model := mappers.SubscriptionToModel(sub)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"started_at": model.StartedAt,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("subscription was modified concurrently")
	}

	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.SubscriptionModel{}, id)

	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("subscription not found")
	}

	return nil
}

func (r *SubscriptionRepository) ListByStatus(ctx context.Context, status vo.SubscriptionStatus, pagination utils.Pagination) ([]*subscription.Subscription, utils.PageResult, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.SubscriptionModel{}).
		Where("status = ?", status.String()).
		Count(&total).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var subscriptionModels []models.SubscriptionModel
	if err := conn.
		Where("status = ?", status.String()).
		Order("id ASC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&subscriptionModels).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to list subscriptions by status: %w", err)
	}

	subs, err := mappers.SubscriptionsToDomain(subscriptionModels)
	if err != nil {
		return nil, utils.PageResult{}, err
	}

	return subs, utils.NewPageResult(pagination, total), nil
}

func (r *SubscriptionRepository) ListByTenant(ctx context.Context, tenantID uint, pagination utils.Pagination) ([]*subscription.Subscription, utils.PageResult, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.SubscriptionModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var subscriptionModels []models.SubscriptionModel
	if err := conn.
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&subscriptionModels).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to list subscriptions by tenant: %w", err)
	}

	subs, err := mappers.SubscriptionsToDomain(subscriptionModels)
	if err != nil {
		return nil, utils.PageResult{}, err
	}

	return subs, utils.NewPageResult(pagination, total), nil
}
