package payment

import (
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
)

// Domain error reasons for invalid payment transitions.
const (
	ReasonPaid     = "payment_paid"
	ReasonRejected = "payment_rejected"
	ReasonCanceled = "payment_canceled"
)

const aggregateName = "payment"

func newDomainError(reason string) error {
	return apperrors.NewDomainError(aggregateName, reason)
}
