package gateway

import "context"

// Charge statuses as reported by the payment provider, normalized by the
// gateway client.
const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusRejected = "rejected"
	StatusCanceled = "canceled"
)

// ChargeRequest describes one charge to place with the provider. Reference is
// our payment SID; the provider echoes it back so an ambiguous timeout can be
// resolved by looking the charge up before charging again.
type ChargeRequest struct {
	Reference     string
	CustomerID    string
	AmountInCents int64
	Currency      string
	Description   string
}

// ChargeResult is the provider's answer for a charge, created or queried.
// RawPayload keeps the unparsed provider response for the payment log.
type ChargeResult struct {
	ExternalID    string
	Status        string
	RefusalReason string
	RawPayload    []byte
}

// Customer is the subscriber profile registered with the provider.
type Customer struct {
	Name     string
	Email    string
	Document string
}

// CustomerResult carries the provider's customer reference.
type CustomerResult struct {
	CustomerID string
	RawPayload []byte
}

// CardResult carries the provider's stored card reference.
type CardResult struct {
	CreditCardID string
	RawPayload   []byte
}

// PaymentGateway is the seam to the external payment provider. The core
// depends only on this contract, never on a concrete provider. Transport
// failures are retryable; after an ambiguous timeout callers must resolve the
// charge via GetPayment before placing it again.
type PaymentGateway interface {
	MakePayment(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	// GetPayment looks a charge up by the provider's external ID or by our
	// reference.
	GetPayment(ctx context.Context, externalID string) (ChargeResult, error)
	RegisterCustomer(ctx context.Context, customer Customer) (CustomerResult, error)
	RegisterCreditCard(ctx context.Context, customerID, cardToken string) (CardResult, error)
}
