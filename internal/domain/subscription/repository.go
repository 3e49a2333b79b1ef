package subscription

import (
	"context"

	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// SubscriptionRepository persists Subscription aggregates.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	// ListByStatus returns subscriptions in the given status ordered by ID,
	// one page at a time. Callers iterate until PageResult.NextPage is -1.
	ListByStatus(ctx context.Context, status vo.SubscriptionStatus, pagination utils.Pagination) ([]*Subscription, utils.PageResult, error)
	ListByTenant(ctx context.Context, tenantID uint, pagination utils.Pagination) ([]*Subscription, utils.PageResult, error)
	Delete(ctx context.Context, id uint) error
}

// SubscriptionPlanRepository persists SubscriptionPlan aggregates.
type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *SubscriptionPlan) error
	GetByID(ctx context.Context, id uint) (*SubscriptionPlan, error)
	GetBySID(ctx context.Context, sid string) (*SubscriptionPlan, error)
	// GetByIDs fetches a batch of plans at once; missing IDs are simply
	// absent from the result.
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*SubscriptionPlan, error)
	Update(ctx context.Context, plan *SubscriptionPlan) error
	ListByTenant(ctx context.Context, tenantID uint, pagination utils.Pagination) ([]*SubscriptionPlan, utils.PageResult, error)
}
