package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	if args.Error(0) == nil && sub.ID() == 0 {
		_ = sub.SetID(1)
	}
	return args.Error(0)
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) ListByStatus(ctx context.Context, status vo.SubscriptionStatus, pagination utils.Pagination) ([]*subscription.Subscription, utils.PageResult, error) {
	args := m.Called(ctx, status, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(utils.PageResult), args.Error(2)
	}
	return args.Get(0).([]*subscription.Subscription), args.Get(1).(utils.PageResult), args.Error(2)
}

func (m *mockSubscriptionRepository) ListByTenant(ctx context.Context, tenantID uint, pagination utils.Pagination) ([]*subscription.Subscription, utils.PageResult, error) {
	args := m.Called(ctx, tenantID, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(utils.PageResult), args.Error(2)
	}
	return args.Get(0).([]*subscription.Subscription), args.Get(1).(utils.PageResult), args.Error(2)
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPlanRepository struct {
	mock.Mock
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *subscription.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	if args.Error(0) == nil && plan.ID() == 0 {
		_ = plan.SetID(1)
	}
	return args.Error(0)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.SubscriptionPlan), args.Error(1)
}

func (m *mockPlanRepository) GetBySID(ctx context.Context, sid string) (*subscription.SubscriptionPlan, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.SubscriptionPlan), args.Error(1)
}

func (m *mockPlanRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*subscription.SubscriptionPlan, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]*subscription.SubscriptionPlan), args.Error(1)
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *subscription.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepository) ListByTenant(ctx context.Context, tenantID uint, pagination utils.Pagination) ([]*subscription.SubscriptionPlan, utils.PageResult, error) {
	args := m.Called(ctx, tenantID, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(utils.PageResult), args.Error(2)
	}
	return args.Get(0).([]*subscription.SubscriptionPlan), args.Get(1).(utils.PageResult), args.Error(2)
}

type mockSubscriberDirectory struct {
	mock.Mock
}

func (m *mockSubscriberDirectory) GetByID(ctx context.Context, id uint) (*Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscriber), args.Error(1)
}

// nopLogger keeps usecase tests focused on behavior instead of log lines.
type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Error(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
func (l nopLogger) With(keysAndValues ...interface{}) logger.Interface { return l }
func (l nopLogger) Named(name string) logger.Interface                 { return l }
