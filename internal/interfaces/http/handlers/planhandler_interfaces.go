package handlers

import (
	"context"

	"github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// Use case interfaces for PlanHandler

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePlanCommand) (*subscription.SubscriptionPlan, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, sid string) (*subscription.SubscriptionPlan, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, query usecases.ListPlansQuery) ([]*subscription.SubscriptionPlan, utils.PageResult, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePlanCommand) (*subscription.SubscriptionPlan, error)
}
