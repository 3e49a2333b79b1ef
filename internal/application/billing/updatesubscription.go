package billing

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

const (
	pausedEmailTitle  = "Assinatura Pausada"
	renewedEmailTitle = "Assinatura Renovada"
	renewedEmailBody  = "Sua assinatura foi renovada com sucesso"
)

type UpdateSubscriptionCommand struct {
	SubscriptionID    uint
	CustomerEmail     string
	PauseSubscription bool
	Reason            string
}

// UpdateSubscriptionUseCase pauses or resumes a subscription. Resuming also
// advances the plan's next billing date by one recurrence unit. The email
// notification is best-effort: side effects run as domain mutation, then
// persistence, then notification, and a failed send is only logged.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.SubscriptionPlanRepository
	notifier         Notifier
	logger           logger.Interface
}

func NewUpdateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.SubscriptionPlanRepository,
	notifier Notifier,
	logger logger.Interface,
) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, cmd UpdateSubscriptionCommand) error {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return err
	}

	if cmd.PauseSubscription {
		return uc.pause(ctx, sub, cmd)
	}
	return uc.resume(ctx, sub, cmd)
}

func (uc *UpdateSubscriptionUseCase) pause(ctx context.Context, sub *subscription.Subscription, cmd UpdateSubscriptionCommand) error {
	if err := sub.Pause(); err != nil {
		uc.logger.Errorw("failed to pause subscription", "error", err, "subscription_id", sub.ID())
		return err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	body := fmt.Sprintf("Sua assinatura foi pausada. Motivo: %s", cmd.Reason)
	uc.notify(ctx, cmd.CustomerEmail, pausedEmailTitle, body, sub.ID())

	uc.logger.Infow("subscription paused", "subscription_id", sub.ID())
	return nil
}

func (uc *UpdateSubscriptionUseCase) resume(ctx context.Context, sub *subscription.Subscription, cmd UpdateSubscriptionCommand) error {
	if err := sub.Activate(); err != nil {
		uc.logger.Errorw("failed to activate subscription", "error", err, "subscription_id", sub.ID())
		return err
	}

	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get subscription plan", "error", err, "plan_id", sub.PlanID())
		return err
	}

	plan.AdvanceBillingDate()

	if err := uc.planRepo.Update(ctx, plan); err != nil {
		uc.logger.Errorw("failed to update subscription plan", "error", err, "plan_id", plan.ID())
		return fmt.Errorf("failed to update subscription plan: %w", err)
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.notify(ctx, cmd.CustomerEmail, renewedEmailTitle, renewedEmailBody, sub.ID())

	uc.logger.Infow("subscription resumed",
		"subscription_id", sub.ID(),
		"next_billing_date", plan.NextBillingDate(),
	)
	return nil
}

func (uc *UpdateSubscriptionUseCase) notify(ctx context.Context, email, title, message string, subscriptionID uint) {
	if email == "" {
		return
	}
	if err := uc.notifier.Send(ctx, email, title, message); err != nil {
		uc.logger.Errorw("failed to send subscription notification",
			"error", err,
			"subscription_id", subscriptionID,
			"title", title,
		)
	}
}
