package subscription

import (
	"fmt"
	"time"

	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/shared/biztime"
	"github.com/faturo-inc/faturo/internal/shared/id"
)

// SubscriptionPlan is a tenant's pricing decision: the recurring amount, the
// recurrence cycle and the bundled catalog items. Plans are never deleted;
// nextBillingDate advances after each successful billing cycle.
//
// The price is meaningful independent of the items list, which may be empty.
type SubscriptionPlan struct {
	id              uint
	sid             string
	tenantID        uint
	name            string
	price           vo.Price
	recurrence      vo.Recurrence
	termURL         *string
	items           []vo.PlanItem
	nextBillingDate *time.Time
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewSubscriptionPlan creates a plan for a tenant.
func NewSubscriptionPlan(tenantID uint, name string, price vo.Price, recurrence vo.Recurrence, termURL *string, items []vo.PlanItem) (*SubscriptionPlan, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("plan price must be positive")
	}
	if !recurrence.IsValid() {
		return nil, fmt.Errorf("invalid recurrence: %s", recurrence)
	}
	if items == nil {
		items = []vo.PlanItem{}
	}

	now := biztime.NowUTC()
	return &SubscriptionPlan{
		sid:        id.NewPlanSID(),
		tenantID:   tenantID,
		name:       name,
		price:      price,
		recurrence: recurrence,
		termURL:    termURL,
		items:      items,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// PlanReconstructParams carries persisted state back into the aggregate.
type PlanReconstructParams struct {
	ID              uint
	SID             string
	TenantID        uint
	Name            string
	Price           vo.Price
	Recurrence      vo.Recurrence
	TermURL         *string
	Items           []vo.PlanItem
	NextBillingDate *time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructSubscriptionPlan rebuilds a plan from persistence.
func ReconstructSubscriptionPlan(p PlanReconstructParams) (*SubscriptionPlan, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if p.TenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !p.Recurrence.IsValid() {
		return nil, fmt.Errorf("invalid recurrence: %s", p.Recurrence)
	}
	if p.Items == nil {
		p.Items = []vo.PlanItem{}
	}

	return &SubscriptionPlan{
		id:              p.ID,
		sid:             p.SID,
		tenantID:        p.TenantID,
		name:            p.Name,
		price:           p.Price,
		recurrence:      p.Recurrence,
		termURL:         p.TermURL,
		items:           p.Items,
		nextBillingDate: p.NextBillingDate,
		version:         p.Version,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

func (p *SubscriptionPlan) ID() uint {
	return p.id
}

// SID returns the public short identifier ("plan_...").
func (p *SubscriptionPlan) SID() string {
	return p.sid
}

func (p *SubscriptionPlan) TenantID() uint {
	return p.tenantID
}

func (p *SubscriptionPlan) Name() string {
	return p.name
}

func (p *SubscriptionPlan) Price() vo.Price {
	return p.price
}

func (p *SubscriptionPlan) Recurrence() vo.Recurrence {
	return p.recurrence
}

func (p *SubscriptionPlan) TermURL() *string {
	return p.termURL
}

// Items returns a copy of the ordered catalog item references.
func (p *SubscriptionPlan) Items() []vo.PlanItem {
	items := make([]vo.PlanItem, len(p.items))
	copy(items, p.items)
	return items
}

func (p *SubscriptionPlan) NextBillingDate() *time.Time {
	return p.nextBillingDate
}

func (p *SubscriptionPlan) Version() int {
	return p.version
}

func (p *SubscriptionPlan) CreatedAt() time.Time {
	return p.createdAt
}

func (p *SubscriptionPlan) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the plan ID (only for persistence layer use)
func (p *SubscriptionPlan) SetID(planID uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if planID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = planID
	return nil
}

// AdvanceBillingDate moves nextBillingDate forward by one recurrence unit
// using exact calendar arithmetic. When no billing date has been set yet the
// cycle starts counting from now.
func (p *SubscriptionPlan) AdvanceBillingDate() {
	now := biztime.NowUTC()

	base := now
	if p.nextBillingDate != nil {
		base = *p.nextBillingDate
	}

	next := p.recurrence.Next(base)
	p.nextBillingDate = &next
	p.updatedAt = now
	p.version++
}

// UpdateDetails changes the mutable pricing attributes.
func (p *SubscriptionPlan) UpdateDetails(name string, price vo.Price, termURL *string) error {
	if name == "" {
		return fmt.Errorf("plan name is required")
	}
	if !price.IsPositive() {
		return fmt.Errorf("plan price must be positive")
	}

	p.name = name
	p.price = price
	p.termURL = termURL
	p.updatedAt = biztime.NowUTC()
	p.version++

	return nil
}

// ReplaceItems swaps the bundled catalog item references, preserving order.
func (p *SubscriptionPlan) ReplaceItems(items []vo.PlanItem) {
	if items == nil {
		items = []vo.PlanItem{}
	}
	p.items = items
	p.updatedAt = biztime.NowUTC()
	p.version++
}
