package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type ListPaymentsQuery struct {
	SubscriptionID uint
	Pagination     utils.Pagination
}

// ListPaymentsUseCase returns a subscription's payment history, newest first.
type ListPaymentsUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, query ListPaymentsQuery) ([]*payment.Payment, utils.PageResult, error) {
	payments, pageResult, err := uc.paymentRepo.ListBySubscriptionID(ctx, query.SubscriptionID, query.Pagination)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err, "subscription_id", query.SubscriptionID)
		return nil, utils.PageResult{}, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, pageResult, nil
}
