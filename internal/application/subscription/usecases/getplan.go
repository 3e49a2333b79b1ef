package usecases

import (
	"context"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type GetPlanUseCase struct {
	planRepo subscription.SubscriptionPlanRepository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo subscription.SubscriptionPlanRepository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, sid string) (*subscription.SubscriptionPlan, error) {
	plan, err := uc.planRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", sid)
		return nil, err
	}
	return plan, nil
}
