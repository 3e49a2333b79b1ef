package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/faturo-inc/faturo/internal/shared/constants"
)

// SubscriptionModel is the persistence model for subscriptions. This is the
// anti-corruption layer between domain and database.
type SubscriptionModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	SubscriberID uint   `gorm:"not null;index:idx_subscriber_subscription"`
	PlanID       uint   `gorm:"not null;index:idx_plan_subscription"`
	TenantID     uint   `gorm:"not null;index:idx_tenant_subscription"`
	Status       string `gorm:"not null;size:20;index:idx_status"`
	StartedAt    *time.Time
	Version      int `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
