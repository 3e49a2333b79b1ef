package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/faturo-inc/faturo/internal/application/payment/gateway"
	"github.com/faturo-inc/faturo/internal/domain/payment"
	vo "github.com/faturo-inc/faturo/internal/domain/payment/valueobjects"
	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/biztime"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type ProcessChargeCommand struct {
	SubscriptionID uint
	SubscriberID   uint
	TenantID       uint
	Amount         float64
}

// ProcessChargeUseCase executes one queued charge on the worker side. The
// charge key keeps the operation idempotent across redeliveries: a settled
// payment for the same billing period is never charged again. A Redis lease
// serializes processing per subscription so concurrent workers cannot race
// the same charge.
type ProcessChargeUseCase struct {
	paymentRepo      payment.PaymentRepository
	paymentLogRepo   payment.PaymentLogRepository
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.SubscriptionPlanRepository
	gateway          gateway.PaymentGateway
	lease            ChargeLease
	chargeTimeout    time.Duration
	leaseTTL         time.Duration
	logger           logger.Interface
}

func NewProcessChargeUseCase(
	paymentRepo payment.PaymentRepository,
	paymentLogRepo payment.PaymentLogRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.SubscriptionPlanRepository,
	gw gateway.PaymentGateway,
	lease ChargeLease,
	chargeTimeout time.Duration,
	leaseTTL time.Duration,
	logger logger.Interface,
) *ProcessChargeUseCase {
	return &ProcessChargeUseCase{
		paymentRepo:      paymentRepo,
		paymentLogRepo:   paymentLogRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		gateway:          gw,
		lease:            lease,
		chargeTimeout:    chargeTimeout,
		leaseTTL:         leaseTTL,
		logger:           logger,
	}
}

func (uc *ProcessChargeUseCase) Execute(ctx context.Context, cmd ProcessChargeCommand) error {
	sub, err := uc.subscriptionRepo.GetByID(ctx, cmd.SubscriptionID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription for charge", "error", err, "subscription_id", cmd.SubscriptionID)
		return err
	}

	if !sub.IsActive() {
		uc.logger.Warnw("skipping charge for non-active subscription",
			"subscription_id", sub.ID(),
			"status", sub.Status(),
		)
		return nil
	}

	leaseKey := fmt.Sprintf("charge:sub:%d", sub.ID())
	acquired, err := uc.lease.Acquire(ctx, leaseKey, uc.leaseTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire charge lease: %w", err)
	}
	if !acquired {
		return apperrors.NewConflictError("charge already in progress for subscription")
	}
	defer func() {
		if err := uc.lease.Release(context.WithoutCancel(ctx), leaseKey); err != nil {
			uc.logger.Warnw("failed to release charge lease", "error", err, "lease_key", leaseKey)
		}
	}()

	pay, err := uc.loadOrCreatePayment(ctx, sub, cmd)
	if err != nil {
		return err
	}
	if !pay.IsPending() {
		uc.logger.Infow("payment already settled, skipping charge",
			"payment_id", pay.ID(),
			"status", pay.Status(),
		)
		return nil
	}

	result, err := uc.charge(ctx, pay, cmd)
	if err != nil {
		return err
	}

	uc.appendLog(ctx, pay, result)

	return uc.reconcile(ctx, pay, result)
}

// loadOrCreatePayment resolves the pending payment for the current billing
// period, reusing an existing one when the message was delivered before.
func (uc *ProcessChargeUseCase) loadOrCreatePayment(ctx context.Context, sub *subscription.Subscription, cmd ProcessChargeCommand) (*payment.Payment, error) {
	period, err := uc.billingPeriod(ctx, sub)
	if err != nil {
		return nil, err
	}

	chargeKey := payment.BuildChargeKey(sub.ID(), period)

	existing, err := uc.paymentRepo.GetByChargeKey(ctx, chargeKey)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up payment by charge key: %w", err)
	}

	amount := vo.NewMoney(toCents(cmd.Amount), "BRL")
	pay, err := payment.NewPayment(sub.ID(), cmd.TenantID, amount, vo.NewMoney(0, "BRL"), chargeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment: %w", err)
	}

	if err := uc.paymentRepo.Create(ctx, pay); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	uc.logger.Infow("payment created for billing period",
		"payment_id", pay.ID(),
		"subscription_id", sub.ID(),
		"charge_key", chargeKey,
	)
	return pay, nil
}

func (uc *ProcessChargeUseCase) billingPeriod(ctx context.Context, sub *subscription.Subscription) (time.Time, error) {
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		uc.logger.Errorw("failed to get plan for charge", "error", err, "plan_id", sub.PlanID())
		return time.Time{}, err
	}
	if plan.NextBillingDate() != nil {
		return *plan.NextBillingDate(), nil
	}
	return biztime.NowUTC(), nil
}

// charge calls the gateway with a bounded timeout. A timeout is ambiguous:
// the provider may have accepted the charge without us seeing the answer, so
// we look it up by our reference before giving up.
func (uc *ProcessChargeUseCase) charge(ctx context.Context, pay *payment.Payment, cmd ProcessChargeCommand) (gateway.ChargeResult, error) {
	chargeCtx, cancel := context.WithTimeout(ctx, uc.chargeTimeout)
	defer cancel()

	result, err := uc.gateway.MakePayment(chargeCtx, gateway.ChargeRequest{
		Reference:     pay.SID(),
		AmountInCents: pay.Amount().AmountInCents(),
		Currency:      pay.Amount().Currency(),
		Description:   fmt.Sprintf("Cobranca da assinatura %d", cmd.SubscriptionID),
	})
	if err == nil {
		return result, nil
	}

	if chargeCtx.Err() == nil {
		return gateway.ChargeResult{}, fmt.Errorf("gateway charge failed: %w", err)
	}

	uc.logger.Warnw("gateway charge timed out, resolving by reference",
		"payment_id", pay.ID(),
		"reference", pay.SID(),
	)

	lookupCtx, cancelLookup := context.WithTimeout(context.WithoutCancel(ctx), uc.chargeTimeout)
	defer cancelLookup()

	resolved, lookupErr := uc.gateway.GetPayment(lookupCtx, pay.SID())
	if lookupErr != nil {
		return gateway.ChargeResult{}, fmt.Errorf("gateway charge ambiguous after timeout: %w", err)
	}
	return resolved, nil
}

func (uc *ProcessChargeUseCase) appendLog(ctx context.Context, pay *payment.Payment, result gateway.ChargeResult) {
	log, err := payment.NewPaymentLog(pay.ID(), result.ExternalID, result.RawPayload)
	if err != nil {
		uc.logger.Errorw("failed to build payment log", "error", err, "payment_id", pay.ID())
		return
	}
	if err := uc.paymentLogRepo.Create(ctx, log); err != nil {
		uc.logger.Errorw("failed to append payment log", "error", err, "payment_id", pay.ID())
	}
}

// reconcile folds the gateway result into the payment. A rejected charge
// leaves the subscription untouched; recovery goes through the payment logs.
func (uc *ProcessChargeUseCase) reconcile(ctx context.Context, pay *payment.Payment, result gateway.ChargeResult) error {
	var err error
	switch result.Status {
	case gateway.StatusPaid:
		err = pay.MarkAsPaid(result.ExternalID)
	case gateway.StatusRejected:
		err = pay.MarkAsRejected(result.ExternalID, result.RefusalReason)
	case gateway.StatusCanceled:
		err = pay.MarkAsCanceled(result.ExternalID)
	case gateway.StatusPending:
		err = pay.AttachExternalID(result.ExternalID)
	default:
		return fmt.Errorf("unknown gateway charge status: %s", result.Status)
	}
	if err != nil {
		return err
	}

	if err := uc.paymentRepo.Update(ctx, pay); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	uc.logger.Infow("charge processed",
		"payment_id", pay.ID(),
		"subscription_id", pay.SubscriptionID(),
		"status", pay.Status(),
		"external_id", result.ExternalID,
	)
	return nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
