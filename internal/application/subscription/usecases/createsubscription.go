package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	SubscriberID uint
	PlanID       uint
	TenantID     uint
}

// CreateSubscriptionUseCase signs a subscriber up for a plan. The new
// subscription starts pending; activation happens through the update API.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.SubscriptionPlanRepository
	subscribers      SubscriberDirectory
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.SubscriptionPlanRepository,
	subscribers SubscriberDirectory,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		subscribers:      subscribers,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	subscriber, err := uc.subscribers.GetByID(ctx, cmd.SubscriberID)
	if err != nil {
		uc.logger.Errorw("failed to resolve subscriber", "error", err, "subscriber_id", cmd.SubscriberID)
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_id", cmd.PlanID)
		return nil, err
	}

	if plan.TenantID() != cmd.TenantID {
		return nil, apperrors.NewValidationError("plan does not belong to tenant")
	}

	sub, err := subscription.NewSubscription(subscriber.ID, plan.ID(), cmd.TenantID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "subscriber_id", cmd.SubscriberID)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"subscriber_id", subscriber.ID,
		"plan_id", plan.ID(),
	)
	return sub, nil
}
