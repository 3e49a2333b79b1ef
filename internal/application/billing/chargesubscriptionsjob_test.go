package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/constants"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

func activeSubscription(t *testing.T, id, subscriberID, planID uint) *subscription.Subscription {
	t.Helper()
	now := time.Now().UTC()
	started := now.Add(-time.Hour)
	sub, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:           id,
		SID:          fmt.Sprintf("sub_%d", id),
		SubscriberID: subscriberID,
		PlanID:       planID,
		TenantID:     1,
		Status:       vo.StatusActive,
		StartedAt:    &started,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return sub
}

func billingPlan(t *testing.T, id uint, amountInCents int64) *subscription.SubscriptionPlan {
	t.Helper()
	now := time.Now().UTC()
	plan, err := subscription.ReconstructSubscriptionPlan(subscription.PlanReconstructParams{
		ID:         id,
		SID:        fmt.Sprintf("plan_%d", id),
		TenantID:   1,
		Name:       fmt.Sprintf("Plano %d", id),
		Price:      vo.NewPrice(amountInCents, "BRL"),
		Recurrence: vo.RecurrenceMonthly,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	return plan
}

func TestChargeSubscriptionsJobDispatchesAllPages(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	// 120 active subscriptions across two plans: pages of 50, 50 and 20
	total := int64(120)
	plans := map[uint]*subscription.SubscriptionPlan{
		1: billingPlan(t, 1, 9990),
		2: billingPlan(t, 2, 19990),
	}

	makePage := func(start, count int) []*subscription.Subscription {
		subs := make([]*subscription.Subscription, 0, count)
		for i := 0; i < count; i++ {
			id := uint(start + i)
			subs = append(subs, activeSubscription(t, id, id+1000, 1+id%2))
		}
		return subs
	}

	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, utils.Pagination{Page: 1, PageSize: constants.ChargePageSize}).
		Return(makePage(1, 50), utils.NewPageResult(utils.Pagination{Page: 1, PageSize: 50}, total), nil).Once()
	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, utils.Pagination{Page: 2, PageSize: constants.ChargePageSize}).
		Return(makePage(51, 50), utils.NewPageResult(utils.Pagination{Page: 2, PageSize: 50}, total), nil).Once()
	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, utils.Pagination{Page: 3, PageSize: constants.ChargePageSize}).
		Return(makePage(101, 20), utils.NewPageResult(utils.Pagination{Page: 3, PageSize: 50}, total), nil).Once()

	planRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(plans, nil).Times(3)

	var batchSizes []int
	queue.On("AddMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		batchSizes = append(batchSizes, len(args.Get(1).([]Message)))
	}).Return(nil).Times(3)

	dispatched, err := job.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, dispatched)
	assert.Equal(t, []int{50, 50, 20}, batchSizes)
	subRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
	queue.AssertExpectations(t)
}

func TestChargeSubscriptionsJobMessageContents(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	sub := activeSubscription(t, 7, 42, 3)
	plans := map[uint]*subscription.SubscriptionPlan{3: billingPlan(t, 3, 9990)}

	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, mock.Anything).
		Return([]*subscription.Subscription{sub}, utils.NewPageResult(utils.Pagination{Page: 1, PageSize: 50}, 1), nil).Once()
	planRepo.On("GetByIDs", mock.Anything, []uint{3}).Return(plans, nil).Once()

	var captured []Message
	queue.On("AddMessages", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).([]Message)
	}).Return(nil).Once()

	dispatched, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)

	require.Len(t, captured, 1)
	msg := captured[0]
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, constants.ChargeJobName, msg.Name)
	assert.Equal(t, uint(7), msg.Payload.SubscriptionID)
	assert.Equal(t, uint(42), msg.Payload.SubscriberID)
	assert.Equal(t, uint(1), msg.Payload.TenantID)
	assert.Equal(t, 99.90, msg.Payload.Amount)
}

func TestChargeSubscriptionsJobDedupesPlanIDs(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	subs := []*subscription.Subscription{
		activeSubscription(t, 1, 101, 5),
		activeSubscription(t, 2, 102, 5),
		activeSubscription(t, 3, 103, 5),
	}
	plans := map[uint]*subscription.SubscriptionPlan{5: billingPlan(t, 5, 5000)}

	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, mock.Anything).
		Return(subs, utils.NewPageResult(utils.Pagination{Page: 1, PageSize: 50}, 3), nil).Once()
	planRepo.On("GetByIDs", mock.Anything, []uint{5}).Return(plans, nil).Once()
	queue.On("AddMessages", mock.Anything, mock.Anything).Return(nil).Once()

	dispatched, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, dispatched)
	planRepo.AssertExpectations(t)
}

func TestChargeSubscriptionsJobSkipsMissingPlan(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	subs := []*subscription.Subscription{
		activeSubscription(t, 1, 101, 5),
		activeSubscription(t, 2, 102, 6),
	}
	plans := map[uint]*subscription.SubscriptionPlan{5: billingPlan(t, 5, 5000)}

	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, mock.Anything).
		Return(subs, utils.NewPageResult(utils.Pagination{Page: 1, PageSize: 50}, 2), nil).Once()
	planRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(plans, nil).Once()

	queue.On("AddMessages", mock.Anything, mock.MatchedBy(func(messages []Message) bool {
		return len(messages) == 1 && messages[0].Payload.SubscriptionID == 1
	})).Return(nil).Once()

	dispatched, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)
	queue.AssertExpectations(t)
}

func TestChargeSubscriptionsJobNoActiveSubscriptions(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, mock.Anything).
		Return([]*subscription.Subscription{}, utils.NewPageResult(utils.Pagination{Page: 1, PageSize: 50}, 0), nil).Once()

	dispatched, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, dispatched)
	queue.AssertNotCalled(t, "AddMessages", mock.Anything, mock.Anything)
}

func TestChargeSubscriptionsJobAbortsOnEnqueueFailure(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	subs := []*subscription.Subscription{activeSubscription(t, 1, 101, 5)}
	plans := map[uint]*subscription.SubscriptionPlan{5: billingPlan(t, 5, 5000)}

	// first of two pages fails at enqueue: the run stops there
	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, utils.Pagination{Page: 1, PageSize: constants.ChargePageSize}).
		Return(subs, utils.NewPageResult(utils.Pagination{Page: 1, PageSize: 50}, 60), nil).Once()
	planRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(plans, nil).Once()
	queue.On("AddMessages", mock.Anything, mock.Anything).Return(fmt.Errorf("redis unavailable")).Once()

	dispatched, err := job.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, dispatched)
	subRepo.AssertNumberOfCalls(t, "ListByStatus", 1)
}

func TestChargeSubscriptionsJobAbortsOnListFailure(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	queue := new(mockQueue)
	job := NewChargeSubscriptionsJob(subRepo, planRepo, queue, nopLogger{})

	subRepo.On("ListByStatus", mock.Anything, vo.StatusActive, mock.Anything).
		Return(nil, utils.PageResult{}, fmt.Errorf("connection reset")).Once()

	_, err := job.Execute(context.Background())
	require.Error(t, err)
	queue.AssertNotCalled(t, "AddMessages", mock.Anything, mock.Anything)
}
