package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/shared/constants"
)

// SubscriptionPlanModel is the persistence model for subscription plans.
// Items is the ordered list of catalog item references as JSON.
type SubscriptionPlanModel struct {
	ID              uint   `gorm:"primarykey"`
	SID             string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: plan_xxx"`
	TenantID        uint   `gorm:"not null;index:idx_tenant_plan"`
	Name            string `gorm:"not null;size:255"`
	AmountInCents   int64  `gorm:"not null;comment:price in cents"`
	Currency        string `gorm:"not null;size:3;default:BRL"`
	Recurrence      string `gorm:"not null;size:20"`
	TermURL         *string `gorm:"size:500"`
	Items           datatypes.JSON
	NextBillingDate *time.Time `gorm:"index:idx_next_billing"`
	Version         int        `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SubscriptionPlanModel) TableName() string {
	return constants.TableSubscriptionPlans
}

// BeforeCreate hook for GORM
func (p *SubscriptionPlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
