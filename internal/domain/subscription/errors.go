package subscription

import (
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
)

// Domain error reasons for invalid subscription transitions. The reason
// strings are stable identifiers consumed by API clients; "subscription_actived"
// is kept verbatim for compatibility with existing consumers.
const (
	ReasonPending  = "subscription_pending"
	ReasonActived  = "subscription_actived"
	ReasonPaused   = "subscription_paused"
	ReasonCanceled = "subscription_canceled"
	ReasonFinished = "subscription_finished"
)

const aggregateName = "subscription"

func newDomainError(reason string) error {
	return apperrors.NewDomainError(aggregateName, reason)
}
