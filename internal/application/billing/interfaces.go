package billing

import "context"

// ChargePayload carries everything the payment worker needs to charge one
// subscription for the current billing period.
type ChargePayload struct {
	SubscriptionID uint    `json:"subscription_id"`
	SubscriberID   uint    `json:"subscriber_id"`
	TenantID       uint    `json:"tenant_id"`
	Amount         float64 `json:"amount"`
}

// Message is one queued charge instruction. ID is unique per enqueue so
// delivery attempts can be traced across retries.
type Message struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Payload ChargePayload `json:"payload"`
}

// Queue dispatches charge messages to the payment workers. AddMessages
// enqueues a whole batch in one call.
type Queue interface {
	AddMessages(ctx context.Context, messages []Message) error
}

// Notifier delivers a notification to a subscriber.
type Notifier interface {
	Send(ctx context.Context, email, title, message string) error
}
