package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type UpdatePlanCommand struct {
	PlanSID       string
	Name          string
	AmountInCents int64
	Currency      string
	TermURL       *string
	Items         []PlanItemInput
}

// UpdatePlanUseCase changes a plan's mutable attributes. The recurrence is
// fixed at creation; existing subscriptions keep billing on it.
type UpdatePlanUseCase struct {
	planRepo subscription.SubscriptionPlanRepository
	logger   logger.Interface
}

func NewUpdatePlanUseCase(planRepo subscription.SubscriptionPlanRepository, logger logger.Interface) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*subscription.SubscriptionPlan, error) {
	plan, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, err
	}

	price := vo.NewPrice(cmd.AmountInCents, cmd.Currency)
	if err := plan.UpdateDetails(cmd.Name, price, cmd.TermURL); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cmd.Items != nil {
		items := make([]vo.PlanItem, 0, len(cmd.Items))
		for _, in := range cmd.Items {
			item, err := vo.NewPlanItem(in.ItemID, in.Name)
			if err != nil {
				return nil, apperrors.NewValidationError(err.Error())
			}
			items = append(items, item)
		}
		plan.ReplaceItems(items)
	}

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", plan.ID())
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.logger.Infow("plan updated", "plan_id", plan.ID())
	return plan, nil
}
