package usecases

import (
	"context"
	"fmt"

	"github.com/faturo-inc/faturo/internal/application/payment/gateway"
	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type HandleGatewayResultCommand struct {
	ExternalID    string
	Status        string
	RefusalReason string
	RawPayload    []byte
}

// HandleGatewayResultUseCase reconciles an asynchronous gateway notification
// into the payment it refers to. Webhooks are delivered at least once:
// replaying an already-applied terminal result only appends a log entry and
// never causes a second transition.
type HandleGatewayResultUseCase struct {
	paymentRepo    payment.PaymentRepository
	paymentLogRepo payment.PaymentLogRepository
	logger         logger.Interface
}

func NewHandleGatewayResultUseCase(
	paymentRepo payment.PaymentRepository,
	paymentLogRepo payment.PaymentLogRepository,
	logger logger.Interface,
) *HandleGatewayResultUseCase {
	return &HandleGatewayResultUseCase{
		paymentRepo:    paymentRepo,
		paymentLogRepo: paymentLogRepo,
		logger:         logger,
	}
}

func (uc *HandleGatewayResultUseCase) Execute(ctx context.Context, cmd HandleGatewayResultCommand) error {
	if cmd.ExternalID == "" {
		return fmt.Errorf("external ID is required")
	}

	pay, err := uc.paymentRepo.GetByExternalID(ctx, cmd.ExternalID)
	if err != nil {
		uc.logger.Errorw("failed to find payment for gateway result", "error", err, "external_id", cmd.ExternalID)
		return err
	}

	uc.appendLog(ctx, pay, cmd)

	versionBefore := pay.Version()

	switch cmd.Status {
	case gateway.StatusPaid:
		err = pay.MarkAsPaid(cmd.ExternalID)
	case gateway.StatusRejected:
		err = pay.MarkAsRejected(cmd.ExternalID, cmd.RefusalReason)
	case gateway.StatusCanceled:
		err = pay.MarkAsCanceled(cmd.ExternalID)
	case gateway.StatusPending:
		// nothing to reconcile yet
		return nil
	default:
		return fmt.Errorf("unknown gateway charge status: %s", cmd.Status)
	}
	if err != nil {
		uc.logger.Errorw("conflicting gateway result for payment",
			"error", err,
			"payment_id", pay.ID(),
			"external_id", cmd.ExternalID,
			"status", cmd.Status,
		)
		return err
	}

	if pay.Version() == versionBefore {
		// replay of the same result: already applied
		return nil
	}

	if err := uc.paymentRepo.Update(ctx, pay); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	uc.logger.Infow("gateway result reconciled",
		"payment_id", pay.ID(),
		"external_id", cmd.ExternalID,
		"status", pay.Status(),
	)
	return nil
}

func (uc *HandleGatewayResultUseCase) appendLog(ctx context.Context, pay *payment.Payment, cmd HandleGatewayResultCommand) {
	log, err := payment.NewPaymentLog(pay.ID(), cmd.ExternalID, cmd.RawPayload)
	if err != nil {
		uc.logger.Errorw("failed to build payment log", "error", err, "payment_id", pay.ID())
		return
	}
	if err := uc.paymentLogRepo.Create(ctx, log); err != nil {
		uc.logger.Errorw("failed to append payment log", "error", err, "payment_id", pay.ID())
	}
}
