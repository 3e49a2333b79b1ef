package payment

import (
	"fmt"
	"time"

	vo "github.com/faturo-inc/faturo/internal/domain/payment/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/biztime"
	"github.com/faturo-inc/faturo/internal/shared/id"
)

// Payment records one charge attempt for a subscription billing period.
// The charge key makes creation idempotent: at most one payment exists per
// subscription and period, regardless of how many times the charge message
// is delivered.
type Payment struct {
	id             uint
	sid            string
	subscriptionID uint
	tenantID       uint
	amount         vo.Money
	tax            vo.Money
	status         vo.PaymentStatus
	refusalReason  *string
	externalID     *string
	chargeKey      string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// BuildChargeKey derives the idempotency key for a subscription's billing
// period. The period component is the billing date truncated to the day.
func BuildChargeKey(subscriptionID uint, period time.Time) string {
	return fmt.Sprintf("sub:%d:%s", subscriptionID, period.UTC().Format("2006-01-02"))
}

// NewPayment creates a pending payment for one billing period.
func NewPayment(subscriptionID, tenantID uint, amount, tax vo.Money, chargeKey string) (*Payment, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	if chargeKey == "" {
		return nil, fmt.Errorf("charge key is required")
	}

	now := biztime.NowUTC()
	return &Payment{
		sid:            id.NewPaymentSID(),
		subscriptionID: subscriptionID,
		tenantID:       tenantID,
		amount:         amount,
		tax:            tax,
		status:         vo.PaymentPending,
		chargeKey:      chargeKey,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// PaymentReconstructParams carries persisted state back into the aggregate.
type PaymentReconstructParams struct {
	ID             uint
	SID            string
	SubscriptionID uint
	TenantID       uint
	Amount         vo.Money
	Tax            vo.Money
	Status         vo.PaymentStatus
	RefusalReason  *string
	ExternalID     *string
	ChargeKey      string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructPayment rebuilds a payment from persistence.
func ReconstructPayment(p PaymentReconstructParams) (*Payment, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !vo.ValidPaymentStatuses[p.Status] {
		return nil, fmt.Errorf("invalid payment status: %s", p.Status)
	}
	if p.ChargeKey == "" {
		return nil, fmt.Errorf("charge key is required")
	}

	return &Payment{
		id:             p.ID,
		sid:            p.SID,
		subscriptionID: p.SubscriptionID,
		tenantID:       p.TenantID,
		amount:         p.Amount,
		tax:            p.Tax,
		status:         p.Status,
		refusalReason:  p.RefusalReason,
		externalID:     p.ExternalID,
		chargeKey:      p.ChargeKey,
		version:        p.Version,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (p *Payment) ID() uint {
	return p.id
}

// SID returns the public short identifier ("pay_...").
func (p *Payment) SID() string {
	return p.sid
}

func (p *Payment) SubscriptionID() uint {
	return p.subscriptionID
}

func (p *Payment) TenantID() uint {
	return p.tenantID
}

func (p *Payment) Amount() vo.Money {
	return p.amount
}

func (p *Payment) Tax() vo.Money {
	return p.tax
}

func (p *Payment) Status() vo.PaymentStatus {
	return p.status
}

func (p *Payment) RefusalReason() *string {
	return p.refusalReason
}

// ExternalID returns the gateway's charge reference, once known.
func (p *Payment) ExternalID() *string {
	return p.externalID
}

func (p *Payment) ChargeKey() string {
	return p.chargeKey
}

func (p *Payment) Version() int {
	return p.version
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the payment ID (only for persistence layer use)
func (p *Payment) SetID(paymentID uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if paymentID == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = paymentID
	return nil
}

// AttachExternalID records the gateway charge reference for a pending
// payment before the outcome is known.
func (p *Payment) AttachExternalID(externalID string) error {
	if externalID == "" {
		return fmt.Errorf("external ID is required")
	}
	if p.externalID != nil && *p.externalID != externalID {
		return fmt.Errorf("payment already has external ID %s", *p.externalID)
	}
	if p.externalID != nil {
		return nil
	}
	p.externalID = &externalID
	p.touch(biztime.NowUTC())
	return nil
}

// MarkAsPaid settles the payment. Replaying the same result for the same
// external ID is a no-op; a different terminal outcome is a conflict.
func (p *Payment) MarkAsPaid(externalID string) error {
	if done, err := p.applyTerminal(vo.PaymentPaid, externalID); done || err != nil {
		return err
	}

	p.status = vo.PaymentPaid
	p.setExternalID(externalID)
	p.refusalReason = nil
	p.touch(biztime.NowUTC())
	return nil
}

// MarkAsRejected settles the payment as refused by the gateway.
func (p *Payment) MarkAsRejected(externalID, reason string) error {
	if done, err := p.applyTerminal(vo.PaymentRejected, externalID); done || err != nil {
		return err
	}

	p.status = vo.PaymentRejected
	p.setExternalID(externalID)
	if reason != "" {
		p.refusalReason = &reason
	}
	p.touch(biztime.NowUTC())
	return nil
}

// MarkAsCanceled settles the payment as canceled on the gateway side.
func (p *Payment) MarkAsCanceled(externalID string) error {
	if done, err := p.applyTerminal(vo.PaymentCanceled, externalID); done || err != nil {
		return err
	}

	p.status = vo.PaymentCanceled
	p.setExternalID(externalID)
	p.touch(biztime.NowUTC())
	return nil
}

func (p *Payment) IsPending() bool {
	return p.status == vo.PaymentPending
}

// applyTerminal resolves replay and conflict before a terminal transition.
// done=true means the same result was already applied and nothing changes.
func (p *Payment) applyTerminal(target vo.PaymentStatus, externalID string) (bool, error) {
	if externalID == "" {
		return false, fmt.Errorf("external ID is required")
	}
	if !p.status.IsTerminal() {
		return false, nil
	}
	if p.status == target && p.externalID != nil && *p.externalID == externalID {
		return true, nil
	}

	switch p.status {
	case vo.PaymentPaid:
		return false, newDomainError(ReasonPaid)
	case vo.PaymentRejected:
		return false, newDomainError(ReasonRejected)
	default:
		return false, newDomainError(ReasonCanceled)
	}
}

func (p *Payment) setExternalID(externalID string) {
	p.externalID = &externalID
}

func (p *Payment) touch(now time.Time) {
	p.updatedAt = now
	p.version++
}
