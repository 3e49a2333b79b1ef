package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type PlanItemInput struct {
	ItemID uint
	Name   string
}

type CreatePlanCommand struct {
	TenantID      uint
	Name          string
	AmountInCents int64
	Currency      string
	Recurrence    string
	TermURL       *string
	Items         []PlanItemInput
}

type CreatePlanUseCase struct {
	planRepo subscription.SubscriptionPlanRepository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo subscription.SubscriptionPlanRepository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*subscription.SubscriptionPlan, error) {
	recurrence, err := vo.ParseRecurrence(cmd.Recurrence)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	items := make([]vo.PlanItem, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		item, err := vo.NewPlanItem(in.ItemID, in.Name)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		items = append(items, item)
	}

	price := vo.NewPrice(cmd.AmountInCents, cmd.Currency)

	plan, err := subscription.NewSubscriptionPlan(cmd.TenantID, cmd.Name, price, recurrence, cmd.TermURL, items)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "plan_id", plan.ID(), "tenant_id", cmd.TenantID)
	return plan, nil
}
