package handlers

import (
	"context"

	paymentUsecases "github.com/faturo-inc/faturo/internal/application/payment/usecases"
	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// Use case interfaces for PaymentHandler and WebhookHandler

type getPaymentUseCase interface {
	Execute(ctx context.Context, sid string) (*payment.Payment, error)
}

type listPaymentsUseCase interface {
	Execute(ctx context.Context, query paymentUsecases.ListPaymentsQuery) ([]*payment.Payment, utils.PageResult, error)
}

type listPaymentLogsUseCase interface {
	Execute(ctx context.Context, query paymentUsecases.ListPaymentLogsQuery) ([]*payment.PaymentLog, utils.PageResult, error)
}

type handleGatewayResultUseCase interface {
	Execute(ctx context.Context, cmd paymentUsecases.HandleGatewayResultCommand) error
}
