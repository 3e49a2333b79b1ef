package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/faturo-inc/faturo/internal/shared/constants"
)

// PaymentLogModel is the persistence model for gateway interaction logs.
// Rows are append-only; there is no updated_at.
type PaymentLogModel struct {
	ID         uint   `gorm:"primarykey"`
	PaymentID  uint   `gorm:"not null;index:idx_payment_log"`
	ExternalID string `gorm:"size:100;index:idx_external_log"`
	Payload    datatypes.JSON
	CreatedAt  time.Time
}

func (PaymentLogModel) TableName() string {
	return constants.TablePaymentLogs
}
