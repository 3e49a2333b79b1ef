package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgateway "github.com/faturo-inc/faturo/internal/application/payment/gateway"
	"github.com/faturo-inc/faturo/internal/shared/config"
	"github.com/faturo-inc/faturo/internal/shared/logger"
)

type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

// newTestGateway spins up a provider stub that serves both the token endpoint
// and the API routes handled by mux.
func newTestGateway(t *testing.T, mux *http.ServeMux) (*HTTPClient, *httptest.Server) {
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := config.GatewayConfig{
		BaseURL:      server.URL,
		TokenURL:     server.URL + "/oauth/token",
		ClientID:     "client",
		ClientSecret: "secret",
	}

	return NewHTTPClient(cfg, newNopLogger()), server
}

func TestHTTPClient_MakePayment(t *testing.T) {
	mux := http.NewServeMux()

	var received chargeRequestBody
	mux.HandleFunc("/v1/charges", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "ch_123",
			"status": "paid",
		})
	})

	client, _ := newTestGateway(t, mux)

	result, err := client.MakePayment(context.Background(), appgateway.ChargeRequest{
		Reference:     "pay_abc",
		CustomerID:    "cus_9",
		AmountInCents: 9990,
		Currency:      "BRL",
		Description:   "monthly subscription",
	})
	require.NoError(t, err)

	assert.Equal(t, "ch_123", result.ExternalID)
	assert.Equal(t, appgateway.StatusPaid, result.Status)
	assert.Empty(t, result.RefusalReason)
	assert.NotEmpty(t, result.RawPayload)

	assert.Equal(t, "pay_abc", received.Reference)
	assert.Equal(t, int64(9990), received.AmountInCents)
	assert.Equal(t, "BRL", received.Currency)
}

func TestHTTPClient_MakePaymentRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/charges", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "ch_124",
			"status":         "rejected",
			"refusal_reason": "insufficient_funds",
		})
	})

	client, _ := newTestGateway(t, mux)

	result, err := client.MakePayment(context.Background(), appgateway.ChargeRequest{
		Reference:     "pay_abc",
		CustomerID:    "cus_9",
		AmountInCents: 9990,
		Currency:      "BRL",
	})
	require.NoError(t, err)

	assert.Equal(t, appgateway.StatusRejected, result.Status)
	assert.Equal(t, "insufficient_funds", result.RefusalReason)
}

func TestHTTPClient_GetPayment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/charges/pay_abc", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "ch_123",
			"status": "pending",
		})
	})

	client, _ := newTestGateway(t, mux)

	result, err := client.GetPayment(context.Background(), "pay_abc")
	require.NoError(t, err)

	assert.Equal(t, "ch_123", result.ExternalID)
	assert.Equal(t, appgateway.StatusPending, result.Status)
}

func TestHTTPClient_ServerErrorIsReturned(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/charges", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	})

	client, _ := newTestGateway(t, mux)

	_, err := client.MakePayment(context.Background(), appgateway.ChargeRequest{
		Reference:     "pay_abc",
		CustomerID:    "cus_9",
		AmountInCents: 9990,
		Currency:      "BRL",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPClient_RegisterCustomerAndCard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/customers", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "cus_42"})
	})
	mux.HandleFunc("/v1/customers/cus_42/cards", func(w http.ResponseWriter, r *http.Request) {
		var body cardRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok_xyz", body.CardToken)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "card_7"})
	})

	client, _ := newTestGateway(t, mux)

	customer, err := client.RegisterCustomer(context.Background(), appgateway.Customer{
		Name:  "Maria Silva",
		Email: "maria@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_42", customer.CustomerID)

	card, err := client.RegisterCreditCard(context.Background(), customer.CustomerID, "tok_xyz")
	require.NoError(t, err)
	assert.Equal(t, "card_7", card.CreditCardID)
}
