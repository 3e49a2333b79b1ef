package usecases

import (
	"context"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.SubscriptionRepository, logger logger.Interface) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, sid string) (*subscription.Subscription, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_sid", sid)
		return nil, err
	}
	return sub, nil
}
