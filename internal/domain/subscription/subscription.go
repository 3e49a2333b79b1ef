package subscription

import (
	"fmt"
	"time"

	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/biztime"
	"github.com/faturo-inc/faturo/internal/shared/id"
)

// Subscription is the aggregate root governing the billing lifecycle of one
// subscriber on one plan. All state transitions go through the explicit
// methods below; terminal states (canceled, finished) accept no further
// transitions.
type Subscription struct {
	id           uint
	sid          string
	subscriberID uint
	planID       uint
	tenantID     uint
	status       vo.SubscriptionStatus
	startedAt    *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewSubscription creates a pending subscription from a tenant's plan
// selection. startedAt stays unset until the first activation.
func NewSubscription(subscriberID, planID, tenantID uint) (*Subscription, error) {
	if subscriberID == 0 {
		return nil, fmt.Errorf("subscriber ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}

	now := biztime.NowUTC()
	return &Subscription{
		sid:          id.NewSubscriptionSID(),
		subscriberID: subscriberID,
		planID:       planID,
		tenantID:     tenantID,
		status:       vo.StatusPending,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// SubscriptionReconstructParams carries persisted state back into the aggregate.
type SubscriptionReconstructParams struct {
	ID           uint
	SID          string
	SubscriberID uint
	PlanID       uint
	TenantID     uint
	Status       vo.SubscriptionStatus
	StartedAt    *time.Time
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.SubscriberID == 0 {
		return nil, fmt.Errorf("subscriber ID is required")
	}
	if p.PlanID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if p.TenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if p.Status == vo.StatusPending && p.StartedAt != nil {
		return nil, fmt.Errorf("pending subscription cannot have a start date")
	}

	return &Subscription{
		id:           p.ID,
		sid:          p.SID,
		subscriberID: p.SubscriberID,
		planID:       p.PlanID,
		tenantID:     p.TenantID,
		status:       p.Status,
		startedAt:    p.StartedAt,
		version:      p.Version,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

// SID returns the public short identifier ("sub_...").
func (s *Subscription) SID() string {
	return s.sid
}

func (s *Subscription) SubscriberID() uint {
	return s.subscriberID
}

func (s *Subscription) PlanID() uint {
	return s.planID
}

func (s *Subscription) TenantID() uint {
	return s.tenantID
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) StartedAt() *time.Time {
	return s.startedAt
}

func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(subID uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if subID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = subID
	return nil
}

// Activate transitions the subscription to active. Valid from pending or
// paused. startedAt is set on the first activation only and never cleared.
func (s *Subscription) Activate() error {
	switch s.status {
	case vo.StatusCanceled:
		return newDomainError(ReasonCanceled)
	case vo.StatusFinished:
		return newDomainError(ReasonFinished)
	case vo.StatusActive:
		return newDomainError(ReasonActived)
	}

	now := biztime.NowUTC()
	s.status = vo.StatusActive
	if s.startedAt == nil {
		s.startedAt = &now
	}
	s.touch(now)

	return nil
}

// Pause transitions the subscription to paused. Valid only from active.
// Terminal-state checks run before the same-state and pending checks so the
// caller can distinguish "already this state" from "terminal".
func (s *Subscription) Pause() error {
	switch s.status {
	case vo.StatusCanceled:
		return newDomainError(ReasonCanceled)
	case vo.StatusFinished:
		return newDomainError(ReasonFinished)
	case vo.StatusPending:
		return newDomainError(ReasonPending)
	case vo.StatusPaused:
		return newDomainError(ReasonPaused)
	}

	s.status = vo.StatusPaused
	s.touch(biztime.NowUTC())

	return nil
}

// Cancel transitions the subscription to canceled. Valid from any
// non-terminal state and irreversible.
func (s *Subscription) Cancel() error {
	switch s.status {
	case vo.StatusCanceled:
		return newDomainError(ReasonCanceled)
	case vo.StatusFinished:
		return newDomainError(ReasonFinished)
	}

	s.status = vo.StatusCanceled
	s.touch(biztime.NowUTC())

	return nil
}

// Finish transitions the subscription to finished. Valid only from active.
func (s *Subscription) Finish() error {
	switch s.status {
	case vo.StatusCanceled:
		return newDomainError(ReasonCanceled)
	case vo.StatusFinished:
		return newDomainError(ReasonFinished)
	case vo.StatusPending:
		return newDomainError(ReasonPending)
	case vo.StatusPaused:
		return newDomainError(ReasonPaused)
	}

	s.status = vo.StatusFinished
	s.touch(biztime.NowUTC())

	return nil
}

// IsActive reports whether the subscription is currently billable.
func (s *Subscription) IsActive() bool {
	return s.status == vo.StatusActive
}

func (s *Subscription) touch(now time.Time) {
	s.updatedAt = now
	s.version++
}
