package payment

import (
	"fmt"
	"time"

	"github.com/faturo-inc/faturo/internal/shared/biztime"
)

// PaymentLog is an append-only record of one gateway interaction, keeping the
// raw provider payload for audits and manual recovery. Logs are never updated
// or deleted.
type PaymentLog struct {
	id         uint
	paymentID  uint
	externalID string
	payload    []byte
	createdAt  time.Time
}

// NewPaymentLog records a raw gateway payload for a payment.
func NewPaymentLog(paymentID uint, externalID string, payload []byte) (*PaymentLog, error) {
	if paymentID == 0 {
		return nil, fmt.Errorf("payment ID is required")
	}
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	return &PaymentLog{
		paymentID:  paymentID,
		externalID: externalID,
		payload:    payload,
		createdAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructPaymentLog rebuilds a log entry from persistence.
func ReconstructPaymentLog(id, paymentID uint, externalID string, payload []byte, createdAt time.Time) *PaymentLog {
	return &PaymentLog{
		id:         id,
		paymentID:  paymentID,
		externalID: externalID,
		payload:    payload,
		createdAt:  createdAt,
	}
}

func (l *PaymentLog) ID() uint {
	return l.id
}

func (l *PaymentLog) PaymentID() uint {
	return l.paymentID
}

func (l *PaymentLog) ExternalID() string {
	return l.externalID
}

// Payload returns the raw gateway payload as stored.
func (l *PaymentLog) Payload() []byte {
	return l.payload
}

func (l *PaymentLog) CreatedAt() time.Time {
	return l.createdAt
}

// SetID sets the log ID (only for persistence layer use)
func (l *PaymentLog) SetID(logID uint) error {
	if l.id != 0 {
		return fmt.Errorf("payment log ID is already set")
	}
	if logID == 0 {
		return fmt.Errorf("payment log ID cannot be zero")
	}
	l.id = logID
	return nil
}
