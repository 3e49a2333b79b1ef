package handlers

import (
	"context"

	"github.com/faturo-inc/faturo/internal/application/billing"
	subUsecases "github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/domain/subscription"
)

// Use case interfaces for SubscriptionHandler

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd subUsecases.CreateSubscriptionCommand) (*subscription.Subscription, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, sid string) (*subscription.Subscription, error)
}

type updateSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd billing.UpdateSubscriptionCommand) error
}
