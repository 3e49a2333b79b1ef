package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/shared/constants"
)

// PaymentModel is the persistence model for payments. ChargeKey carries a
// unique index so one billing period can never hold two payments.
type PaymentModel struct {
	ID             uint   `gorm:"primarykey"`
	SID            string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: pay_xxx"`
	SubscriptionID uint   `gorm:"not null;index:idx_subscription_payment"`
	TenantID       uint   `gorm:"not null;index:idx_tenant_payment"`
	AmountInCents  int64  `gorm:"not null"`
	TaxInCents     int64  `gorm:"not null;default:0"`
	Currency       string `gorm:"not null;size:3;default:BRL"`
	Status         string `gorm:"not null;size:20;index:idx_payment_status"`
	RefusalReason  *string `gorm:"size:500"`
	ExternalID     *string `gorm:"uniqueIndex;size:100;comment:gateway charge reference"`
	ChargeKey      string  `gorm:"uniqueIndex;not null;size:100"`
	Version        int     `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}

// BeforeCreate hook for GORM
func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
