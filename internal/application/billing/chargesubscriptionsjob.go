package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/constants"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// ChargeSubscriptionsJob walks every active subscription and dispatches one
// charge message per subscription to the payment queue. Pages are processed
// sequentially and each page is submitted in a single bulk enqueue; a page
// failure aborts the run so the scheduler retries the whole cycle later.
type ChargeSubscriptionsJob struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.SubscriptionPlanRepository
	queue            Queue
	logger           logger.Interface
}

func NewChargeSubscriptionsJob(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.SubscriptionPlanRepository,
	queue Queue,
	logger logger.Interface,
) *ChargeSubscriptionsJob {
	return &ChargeSubscriptionsJob{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		queue:            queue,
		logger:           logger,
	}
}

// Execute runs one billing sweep and returns the number of charge messages
// dispatched.
func (j *ChargeSubscriptionsJob) Execute(ctx context.Context) (int, error) {
	dispatched := 0
	page := constants.DefaultPage

	for {
		pagination := utils.ValidatePagination(page, constants.ChargePageSize)

		subs, pageResult, err := j.subscriptionRepo.ListByStatus(ctx, vo.StatusActive, pagination)
		if err != nil {
			return dispatched, fmt.Errorf("failed to list active subscriptions: %w", err)
		}

		if len(subs) > 0 {
			sent, err := j.dispatchPage(ctx, subs)
			dispatched += sent
			if err != nil {
				return dispatched, err
			}
		}

		if pageResult.NextPage == -1 {
			break
		}
		page = pageResult.NextPage
	}

	j.logger.Infow("charge sweep completed", "messages_dispatched", dispatched)
	return dispatched, nil
}

func (j *ChargeSubscriptionsJob) dispatchPage(ctx context.Context, subs []*subscription.Subscription) (int, error) {
	plans, err := j.fetchPlans(ctx, subs)
	if err != nil {
		return 0, err
	}

	messages := make([]Message, 0, len(subs))
	for _, sub := range subs {
		plan, ok := plans[sub.PlanID()]
		if !ok {
			j.logger.Errorw("subscription references missing plan, skipping charge",
				"subscription_id", sub.ID(),
				"plan_id", sub.PlanID(),
			)
			continue
		}

		messages = append(messages, Message{
			ID:   uuid.NewString(),
			Name: constants.ChargeJobName,
			Payload: ChargePayload{
				SubscriptionID: sub.ID(),
				SubscriberID:   sub.SubscriberID(),
				TenantID:       sub.TenantID(),
				Amount:         plan.Price().Amount(),
			},
		})
	}

	if len(messages) == 0 {
		return 0, nil
	}

	if err := j.queue.AddMessages(ctx, messages); err != nil {
		return 0, fmt.Errorf("failed to enqueue charge messages: %w", err)
	}

	return len(messages), nil
}

// fetchPlans batch-loads the distinct plans referenced by a page of
// subscriptions.
func (j *ChargeSubscriptionsJob) fetchPlans(ctx context.Context, subs []*subscription.Subscription) (map[uint]*subscription.SubscriptionPlan, error) {
	seen := make(map[uint]bool, len(subs))
	planIDs := make([]uint, 0, len(subs))
	for _, sub := range subs {
		if !seen[sub.PlanID()] {
			seen[sub.PlanID()] = true
			planIDs = append(planIDs, sub.PlanID())
		}
	}

	plans, err := j.planRepo.GetByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription plans: %w", err)
	}
	return plans, nil
}
