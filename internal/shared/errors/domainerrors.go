package errors

import (
	"errors"
	"fmt"
)

// DomainError represents an invalid state transition or invariant violation
// inside an aggregate. The reason is a stable machine-readable identifier
// (e.g. "subscription_paused") so callers can render an accurate message.
// Domain errors are caller-fixable and are never retried automatically.
type DomainError struct {
	Aggregate string `json:"aggregate"`
	Reason    string `json:"reason"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Aggregate, e.Reason)
}

// NewDomainError creates a new domain error for an aggregate and reason.
func NewDomainError(aggregate, reason string) *DomainError {
	return &DomainError{
		Aggregate: aggregate,
		Reason:    reason,
	}
}

// GetDomainError extracts DomainError from error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// IsDomainError checks if the error is a DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// DomainErrorHasReason checks if the error is a DomainError with the given reason.
func DomainErrorHasReason(err error, reason string) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Reason == reason
}
