package payment

import (
	"context"

	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// PaymentRepository persists Payment aggregates.
type PaymentRepository interface {
	Create(ctx context.Context, pay *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	GetBySID(ctx context.Context, sid string) (*Payment, error)
	// GetByChargeKey is the idempotency lookup: at most one payment exists
	// per charge key.
	GetByChargeKey(ctx context.Context, chargeKey string) (*Payment, error)
	GetByExternalID(ctx context.Context, externalID string) (*Payment, error)
	Update(ctx context.Context, pay *Payment) error
	ListBySubscriptionID(ctx context.Context, subscriptionID uint, pagination utils.Pagination) ([]*Payment, utils.PageResult, error)
}

// PaymentLogRepository persists append-only gateway interaction logs.
type PaymentLogRepository interface {
	Create(ctx context.Context, log *PaymentLog) error
	ListByPaymentID(ctx context.Context, paymentID uint, pagination utils.Pagination) ([]*PaymentLog, utils.PageResult, error)
}
