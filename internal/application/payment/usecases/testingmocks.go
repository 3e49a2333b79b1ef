package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/faturo-inc/faturo/internal/application/payment/gateway"
	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/domain/subscription"
	subvo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) Create(ctx context.Context, pay *payment.Payment) error {
	args := m.Called(ctx, pay)
	if args.Error(0) == nil && pay.ID() == 0 {
		_ = pay.SetID(1)
	}
	return args.Error(0)
}

func (m *mockPaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepository) GetBySID(ctx context.Context, sid string) (*payment.Payment, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepository) GetByChargeKey(ctx context.Context, chargeKey string) (*payment.Payment, error) {
	args := m.Called(ctx, chargeKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*payment.Payment, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *mockPaymentRepository) Update(ctx context.Context, pay *payment.Payment) error {
	args := m.Called(ctx, pay)
	return args.Error(0)
}

func (m *mockPaymentRepository) ListBySubscriptionID(ctx context.Context, subscriptionID uint, pagination utils.Pagination) ([]*payment.Payment, utils.PageResult, error) {
	args := m.Called(ctx, subscriptionID, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(utils.PageResult), args.Error(2)
	}
	return args.Get(0).([]*payment.Payment), args.Get(1).(utils.PageResult), args.Error(2)
}

type mockPaymentLogRepository struct {
	mock.Mock
}

func (m *mockPaymentLogRepository) Create(ctx context.Context, log *payment.PaymentLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockPaymentLogRepository) ListByPaymentID(ctx context.Context, paymentID uint, pagination utils.Pagination) ([]*payment.PaymentLog, utils.PageResult, error) {
	args := m.Called(ctx, paymentID, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(utils.PageResult), args.Error(2)
	}
	return args.Get(0).([]*payment.PaymentLog), args.Get(1).(utils.PageResult), args.Error(2)
}

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
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

func (m *mockSubscriptionRepository) ListByStatus(ctx context.Context, status subvo.SubscriptionStatus, pagination utils.Pagination) ([]*subscription.Subscription, utils.PageResult, error) {
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

type mockPaymentGateway struct {
	mock.Mock
}

func (m *mockPaymentGateway) MakePayment(ctx context.Context, req gateway.ChargeRequest) (gateway.ChargeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(gateway.ChargeResult), args.Error(1)
}

func (m *mockPaymentGateway) GetPayment(ctx context.Context, externalID string) (gateway.ChargeResult, error) {
	args := m.Called(ctx, externalID)
	return args.Get(0).(gateway.ChargeResult), args.Error(1)
}

func (m *mockPaymentGateway) RegisterCustomer(ctx context.Context, customer gateway.Customer) (gateway.CustomerResult, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(gateway.CustomerResult), args.Error(1)
}

func (m *mockPaymentGateway) RegisterCreditCard(ctx context.Context, customerID, cardToken string) (gateway.CardResult, error) {
	args := m.Called(ctx, customerID, cardToken)
	return args.Get(0).(gateway.CardResult), args.Error(1)
}

type mockChargeLease struct {
	mock.Mock
}

func (m *mockChargeLease) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockChargeLease) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
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
