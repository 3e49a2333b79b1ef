package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type ListPaymentLogsQuery struct {
	PaymentID  uint
	Pagination utils.Pagination
}

// ListPaymentLogsUseCase returns the raw gateway interaction history for one
// payment, oldest first. This is the manual recovery path for rejected or
// ambiguous charges.
type ListPaymentLogsUseCase struct {
	paymentRepo    payment.PaymentRepository
	paymentLogRepo payment.PaymentLogRepository
	logger         logger.Interface
}

func NewListPaymentLogsUseCase(
	paymentRepo payment.PaymentRepository,
	paymentLogRepo payment.PaymentLogRepository,
	logger logger.Interface,
) *ListPaymentLogsUseCase {
	return &ListPaymentLogsUseCase{
		paymentRepo:    paymentRepo,
		paymentLogRepo: paymentLogRepo,
		logger:         logger,
	}
}

func (uc *ListPaymentLogsUseCase) Execute(ctx context.Context, query ListPaymentLogsQuery) ([]*payment.PaymentLog, utils.PageResult, error) {
	if _, err := uc.paymentRepo.GetByID(ctx, query.PaymentID); err != nil {
		uc.logger.Errorw("failed to get payment", "error", err, "payment_id", query.PaymentID)
		return nil, utils.PageResult{}, err
	}

	logs, pageResult, err := uc.paymentLogRepo.ListByPaymentID(ctx, query.PaymentID, query.Pagination)
	if err != nil {
		uc.logger.Errorw("failed to list payment logs", "error", err, "payment_id", query.PaymentID)
		return nil, utils.PageResult{}, fmt.Errorf("failed to list payment logs: %w", err)
	}
	return logs, pageResult, nil
}
