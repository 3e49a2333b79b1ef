package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/mappers"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
	"github.com/faturo-inc/faturo/internal/shared/db"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type SubscriptionPlanRepository struct {
	db *gorm.DB
}

func NewSubscriptionPlanRepository(database *gorm.DB) *SubscriptionPlanRepository {
	return &SubscriptionPlanRepository{db: database}
}

func (r *SubscriptionPlanRepository) Create(ctx context.Context, plan *subscription.SubscriptionPlan) error {
	model, err := mappers.SubscriptionPlanToModel(plan)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription plan: %w", err)
	}

	return plan.SetID(model.ID)
}

func (r *SubscriptionPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.SubscriptionPlan, error) {
	var model models.SubscriptionPlanModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscription plan not found")
		}
		return nil, fmt.Errorf("failed to get subscription plan: %w", err)
	}

	return mappers.SubscriptionPlanToDomain(&model)
}

func (r *SubscriptionPlanRepository) GetBySID(ctx context.Context, sid string) (*subscription.SubscriptionPlan, error) {
	var model models.SubscriptionPlanModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscription plan not found")
		}
		return nil, fmt.Errorf("failed to get subscription plan by sid: %w", err)
	}

	return mappers.SubscriptionPlanToDomain(&model)
}

func (r *SubscriptionPlanRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*subscription.SubscriptionPlan, error) {
	plans := make(map[uint]*subscription.SubscriptionPlan, len(ids))
	if len(ids) == 0 {
		return plans, nil
	}

	var planModels []models.SubscriptionPlanModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id IN ?", ids).
		Find(&planModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get subscription plans by ids: %w", err)
	}

	for i := range planModels {
		plan, err := mappers.SubscriptionPlanToDomain(&planModels[i])
		if err != nil {
			return nil, err
		}
		plans[plan.ID()] = plan
	}

	return plans, nil
}

func (r *SubscriptionPlanRepository) Update(ctx context.Context, plan *subscription.SubscriptionPlan) error {
	model, err := mappers.SubscriptionPlanToModel(plan)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionPlanModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"name":              model.Name,
			"amount_in_cents":   model.AmountInCents,
			"currency":          model.Currency,
			"term_url":          model.TermURL,
			"items":             model.Items,
			"next_billing_date": model.NextBillingDate,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update subscription plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("subscription plan was modified concurrently")
	}

	return nil
}

func (r *SubscriptionPlanRepository) ListByTenant(ctx context.Context, tenantID uint, pagination utils.Pagination) ([]*subscription.SubscriptionPlan, utils.PageResult, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.SubscriptionPlanModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to count subscription plans: %w", err)
	}

	var planModels []models.SubscriptionPlanModel
	if err := conn.
		Where("tenant_id = ?", tenantID).
		Order("id DESC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&planModels).Error; err != nil {
		return nil, utils.PageResult{}, fmt.Errorf("failed to list subscription plans: %w", err)
	}

	plans, err := mappers.SubscriptionPlansToDomain(planModels)
	if err != nil {
		return nil, utils.PageResult{}, err
	}

	return plans, utils.NewPageResult(pagination, total), nil
}
