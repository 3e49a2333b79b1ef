package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faturo-inc/faturo/internal/application/billing"
	subUsecases "github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateSubscriptionUC struct {
	result *subscription.Subscription
	err    error
	gotCmd subUsecases.CreateSubscriptionCommand
}

func (m *mockCreateSubscriptionUC) Execute(ctx context.Context, cmd subUsecases.CreateSubscriptionCommand) (*subscription.Subscription, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockGetSubscriptionUC struct {
	result *subscription.Subscription
	err    error
}

func (m *mockGetSubscriptionUC) Execute(ctx context.Context, sid string) (*subscription.Subscription, error) {
	return m.result, m.err
}

type mockUpdateSubscriptionUC struct {
	err    error
	called bool
	gotCmd billing.UpdateSubscriptionCommand
}

func (m *mockUpdateSubscriptionUC) Execute(ctx context.Context, cmd billing.UpdateSubscriptionCommand) error {
	m.called = true
	m.gotCmd = cmd
	return m.err
}

func testSubscription(t *testing.T, status vo.SubscriptionStatus) *subscription.Subscription {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var startedAt *time.Time
	if status != vo.StatusPending {
		startedAt = &now
	}
	sub, err := subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:           1,
		SID:          "sub_abc123",
		SubscriberID: 7,
		PlanID:       5,
		TenantID:     2,
		Status:       status,
		StartedAt:    startedAt,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return sub
}

func performRequest(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func subscriptionTestEngine(h *SubscriptionHandler) *gin.Engine {
	engine := gin.New()
	engine.POST("/subscriptions", h.CreateSubscription)
	engine.GET("/subscriptions/:sid", h.GetSubscription)
	engine.PATCH("/subscriptions/:sid", h.UpdateSubscription)
	return engine
}

func TestSubscriptionHandler_CreateSubscription(t *testing.T) {
	createUC := &mockCreateSubscriptionUC{result: testSubscription(t, vo.StatusPending)}
	h := NewSubscriptionHandler(createUC, &mockGetSubscriptionUC{}, &mockUpdateSubscriptionUC{}, newNopLogger())
	engine := subscriptionTestEngine(h)

	w := performRequest(engine, http.MethodPost, "/subscriptions", gin.H{
		"subscriber_id": 7,
		"plan_id":       5,
		"tenant_id":     2,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), createUC.gotCmd.SubscriberID)
	assert.Equal(t, uint(5), createUC.gotCmd.PlanID)
	assert.Equal(t, uint(2), createUC.gotCmd.TenantID)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "sub_abc123", data["sid"])
	assert.Equal(t, "pending", data["status"])
}

func TestSubscriptionHandler_CreateSubscriptionMissingFields(t *testing.T) {
	createUC := &mockCreateSubscriptionUC{}
	h := NewSubscriptionHandler(createUC, &mockGetSubscriptionUC{}, &mockUpdateSubscriptionUC{}, newNopLogger())
	engine := subscriptionTestEngine(h)

	w := performRequest(engine, http.MethodPost, "/subscriptions", gin.H{"subscriber_id": 7})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_GetSubscriptionNotFound(t *testing.T) {
	getUC := &mockGetSubscriptionUC{err: apperrors.NewNotFoundError("subscription not found")}
	h := NewSubscriptionHandler(&mockCreateSubscriptionUC{}, getUC, &mockUpdateSubscriptionUC{}, newNopLogger())
	engine := subscriptionTestEngine(h)

	w := performRequest(engine, http.MethodGet, "/subscriptions/sub_nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionHandler_PauseSubscription(t *testing.T) {
	getUC := &mockGetSubscriptionUC{result: testSubscription(t, vo.StatusActive)}
	updateUC := &mockUpdateSubscriptionUC{}
	h := NewSubscriptionHandler(&mockCreateSubscriptionUC{}, getUC, updateUC, newNopLogger())
	engine := subscriptionTestEngine(h)

	w := performRequest(engine, http.MethodPatch, "/subscriptions/sub_abc123", gin.H{
		"pause_subscription": true,
		"reason":             "viagem",
		"customer_email":     "maria@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, updateUC.called)
	assert.Equal(t, uint(1), updateUC.gotCmd.SubscriptionID)
	assert.True(t, updateUC.gotCmd.PauseSubscription)
	assert.Equal(t, "viagem", updateUC.gotCmd.Reason)
	assert.Equal(t, "maria@example.com", updateUC.gotCmd.CustomerEmail)
}

func TestSubscriptionHandler_UpdateDomainErrorMapsTo422(t *testing.T) {
	pending := testSubscription(t, vo.StatusPending)
	domainErr := pending.Pause()
	require.Error(t, domainErr)

	getUC := &mockGetSubscriptionUC{result: pending}
	updateUC := &mockUpdateSubscriptionUC{err: domainErr}
	h := NewSubscriptionHandler(&mockCreateSubscriptionUC{}, getUC, updateUC, newNopLogger())
	engine := subscriptionTestEngine(h)

	w := performRequest(engine, http.MethodPatch, "/subscriptions/sub_abc123", gin.H{
		"pause_subscription": true,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
