package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type ListPlansQuery struct {
	TenantID   uint
	Pagination utils.Pagination
}

type ListPlansUseCase struct {
	planRepo subscription.SubscriptionPlanRepository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo subscription.SubscriptionPlanRepository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) ([]*subscription.SubscriptionPlan, utils.PageResult, error) {
	plans, pageResult, err := uc.planRepo.ListByTenant(ctx, query.TenantID, query.Pagination)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err, "tenant_id", query.TenantID)
		return nil, utils.PageResult{}, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, pageResult, nil
}
