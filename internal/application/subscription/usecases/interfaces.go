package usecases

import "context"

// Subscriber is the directory's view of a billable customer.
type Subscriber struct {
	ID    uint
	Name  string
	Email string
}

// SubscriberDirectory resolves subscribers from the customer directory, which
// lives outside this service.
type SubscriberDirectory interface {
	// GetByID returns a not-found error when the subscriber does not exist.
	GetByID(ctx context.Context, id uint) (*Subscriber, error)
}
