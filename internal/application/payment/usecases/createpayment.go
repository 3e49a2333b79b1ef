package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	vo "github.com/faturo-inc/faturo/internal/domain/payment/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type CreatePaymentCommand struct {
	SubscriptionID uint
	TenantID       uint
	AmountInCents  int64
	TaxInCents     int64
	ChargeKey      string
}

// CreatePaymentUseCase creates a pending payment for a billing period. The
// charge key makes it idempotent: a duplicate returns the existing payment
// instead of creating a second one.
type CreatePaymentUseCase struct {
	paymentRepo payment.PaymentRepository
	logger      logger.Interface
}

func NewCreatePaymentUseCase(paymentRepo payment.PaymentRepository, logger logger.Interface) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

func (uc *CreatePaymentUseCase) Execute(ctx context.Context, cmd CreatePaymentCommand) (*payment.Payment, error) {
	existing, err := uc.paymentRepo.GetByChargeKey(ctx, cmd.ChargeKey)
	if err == nil {
		uc.logger.Infow("payment already exists for charge key",
			"payment_id", existing.ID(),
			"charge_key", cmd.ChargeKey,
		)
		return existing, nil
	}
	if !apperrors.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up payment by charge key: %w", err)
	}

	amount := vo.NewMoney(cmd.AmountInCents, "BRL")
	tax := vo.NewMoney(cmd.TaxInCents, "BRL")

	pay, err := payment.NewPayment(cmd.SubscriptionID, cmd.TenantID, amount, tax, cmd.ChargeKey)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.paymentRepo.Create(ctx, pay); err != nil {
		uc.logger.Errorw("failed to create payment", "error", err, "charge_key", cmd.ChargeKey)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	uc.logger.Infow("payment created",
		"payment_id", pay.ID(),
		"subscription_id", cmd.SubscriptionID,
		"charge_key", cmd.ChargeKey,
	)
	return pay, nil
}
