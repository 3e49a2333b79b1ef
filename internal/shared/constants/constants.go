package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// ChargePageSize is the fixed page size used by the charge dispatch job
	// when scanning active subscriptions.
	ChargePageSize = 50

	// ChargeJobName is the queue-internal job name carried by charge messages.
	ChargeJobName = "billing:charge-subscription"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyRequestID = "request_id"
	ContextKeyTenantID  = "tenant_id"

	// Database table names
	TableSubscriptions     = "subscriptions"
	TableSubscriptionPlans = "subscription_plans"
	TablePayments          = "payments"
	TablePaymentLogs       = "payment_logs"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgValidationFailed    = "Validation failed"
)
