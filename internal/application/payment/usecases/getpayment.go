package usecases

import (
	"context"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type GetPaymentUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewGetPaymentUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *GetPaymentUseCase {
	return &GetPaymentUseCase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, sid string) (*payment.Payment, error) {
	pay, err := uc.paymentRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get payment", "error", err, "payment_sid", sid)
		return nil, err
	}
	return pay, nil
}
