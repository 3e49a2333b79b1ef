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
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
)

func pausedSubscription(t *testing.T, id uint) *subscription.Subscription {
	t.Helper()
	now := time.Now().UTC()
	started := now.Add(-time.Hour)
	sub, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:           id,
		SID:          fmt.Sprintf("sub_%d", id),
		SubscriberID: 42,
		PlanID:       3,
		TenantID:     1,
		Status:       vo.StatusPaused,
		StartedAt:    &started,
		Version:      2,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return sub
}

func planWithBillingDate(t *testing.T, id uint, billing time.Time) *subscription.SubscriptionPlan {
	t.Helper()
	now := time.Now().UTC()
	plan, err := subscription.ReconstructSubscriptionPlan(subscription.PlanReconstructParams{
		ID:              id,
		SID:             fmt.Sprintf("plan_%d", id),
		TenantID:        1,
		Name:            "Plano Pro",
		Price:           vo.NewPrice(9990, "BRL"),
		Recurrence:      vo.RecurrenceMonthly,
		NextBillingDate: &billing,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	require.NoError(t, err)
	return plan
}

func TestUpdateSubscriptionPause(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	notifier := new(mockNotifier)
	uc := NewUpdateSubscriptionUseCase(subRepo, planRepo, notifier, nopLogger{})

	sub := activeSubscription(t, 7, 42, 3)

	subRepo.On("GetByID", mock.Anything, uint(7)).Return(sub, nil).Once()
	subRepo.On("Update", mock.Anything, sub).Return(nil).Once()
	notifier.On("Send", mock.Anything, "cliente@example.com.br", "Assinatura Pausada",
		"Sua assinatura foi pausada. Motivo: viagem de ferias").Return(nil).Once()

	err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
		SubscriptionID:    7,
		CustomerEmail:     "cliente@example.com.br",
		PauseSubscription: true,
		Reason:            "viagem de ferias",
	})
	require.NoError(t, err)

	assert.Equal(t, vo.StatusPaused, sub.Status())
	subRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	planRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUpdateSubscriptionResume(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	notifier := new(mockNotifier)
	uc := NewUpdateSubscriptionUseCase(subRepo, planRepo, notifier, nopLogger{})

	sub := pausedSubscription(t, 7)
	billing := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	plan := planWithBillingDate(t, 3, billing)

	subRepo.On("GetByID", mock.Anything, uint(7)).Return(sub, nil).Once()
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(plan, nil).Once()
	planRepo.On("Update", mock.Anything, plan).Return(nil).Once()
	subRepo.On("Update", mock.Anything, sub).Return(nil).Once()
	notifier.On("Send", mock.Anything, "cliente@example.com.br", "Assinatura Renovada",
		"Sua assinatura foi renovada com sucesso").Return(nil).Once()

	err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
		SubscriptionID: 7,
		CustomerEmail:  "cliente@example.com.br",
	})
	require.NoError(t, err)

	assert.Equal(t, vo.StatusActive, sub.Status())
	require.NotNil(t, plan.NextBillingDate())
	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), *plan.NextBillingDate())
	subRepo.AssertExpectations(t)
	planRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateSubscriptionNotificationFailureIsBestEffort(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	notifier := new(mockNotifier)
	uc := NewUpdateSubscriptionUseCase(subRepo, planRepo, notifier, nopLogger{})

	sub := activeSubscription(t, 7, 42, 3)

	subRepo.On("GetByID", mock.Anything, uint(7)).Return(sub, nil).Once()
	subRepo.On("Update", mock.Anything, sub).Return(nil).Once()
	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("smtp unavailable")).Once()

	err := uc.Execute(context.Background(), UpdateSubscriptionCommand{
		SubscriptionID:    7,
		CustomerEmail:     "cliente@example.com.br",
		PauseSubscription: true,
		Reason:            "inadimplencia",
	})

	// the pause persisted; only the notification failed
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPaused, sub.Status())
}

func TestUpdateSubscriptionPauseInvalidTransition(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	notifier := new(mockNotifier)
	uc := NewUpdateSubscriptionUseCase(subRepo, planRepo, notifier, nopLogger{})

	sub, err := subscription.NewSubscription(42, 3, 1)
	require.NoError(t, err)
	require.NoError(t, sub.SetID(7))

	subRepo.On("GetByID", mock.Anything, uint(7)).Return(sub, nil).Once()

	err = uc.Execute(context.Background(), UpdateSubscriptionCommand{
		SubscriptionID:    7,
		PauseSubscription: true,
	})
	require.Error(t, err)
	assert.True(t, apperrors.DomainErrorHasReason(err, subscription.ReasonPending))

	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSubscriptionNotFound(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	notifier := new(mockNotifier)
	uc := NewUpdateSubscriptionUseCase(subRepo, planRepo, notifier, nopLogger{})

	notFound := apperrors.NewNotFoundError("subscription not found")
	subRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, notFound).Once()

	err := uc.Execute(context.Background(), UpdateSubscriptionCommand{SubscriptionID: 99})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestUpdateSubscriptionResumePlanUpdateFailure(t *testing.T) {
	subRepo := new(mockSubscriptionRepository)
	planRepo := new(mockPlanRepository)
	notifier := new(mockNotifier)
	uc := NewUpdateSubscriptionUseCase(subRepo, planRepo, notifier, nopLogger{})

	sub := pausedSubscription(t, 7)
	plan := planWithBillingDate(t, 3, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	subRepo.On("GetByID", mock.Anything, uint(7)).Return(sub, nil).Once()
	planRepo.On("GetByID", mock.Anything, uint(3)).Return(plan, nil).Once()
	planRepo.On("Update", mock.Anything, plan).Return(fmt.Errorf("deadlock")).Once()

	err := uc.Execute(context.Background(), UpdateSubscriptionCommand{SubscriptionID: 7})
	require.Error(t, err)

	subRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
