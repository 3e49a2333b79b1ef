package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentUsecases "github.com/faturo-inc/faturo/internal/application/payment/usecases"
	"github.com/faturo-inc/faturo/internal/domain/payment"
	paymentVO "github.com/faturo-inc/faturo/internal/domain/payment/valueobjects"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockGetPaymentUC struct {
	result *payment.Payment
	err    error
}

func (m *mockGetPaymentUC) Execute(ctx context.Context, sid string) (*payment.Payment, error) {
	return m.result, m.err
}

type mockListPaymentsUC struct {
	result     []*payment.Payment
	pageResult utils.PageResult
	err        error
	gotQuery   paymentUsecases.ListPaymentsQuery
}

func (m *mockListPaymentsUC) Execute(ctx context.Context, query paymentUsecases.ListPaymentsQuery) ([]*payment.Payment, utils.PageResult, error) {
	m.gotQuery = query
	return m.result, m.pageResult, m.err
}

type mockListPaymentLogsUC struct {
	result     []*payment.PaymentLog
	pageResult utils.PageResult
	err        error
	gotQuery   paymentUsecases.ListPaymentLogsQuery
}

func (m *mockListPaymentLogsUC) Execute(ctx context.Context, query paymentUsecases.ListPaymentLogsQuery) ([]*payment.PaymentLog, utils.PageResult, error) {
	m.gotQuery = query
	return m.result, m.pageResult, m.err
}

type mockHandleGatewayResultUC struct {
	err    error
	called bool
	gotCmd paymentUsecases.HandleGatewayResultCommand
}

func (m *mockHandleGatewayResultUC) Execute(ctx context.Context, cmd paymentUsecases.HandleGatewayResultCommand) error {
	m.called = true
	m.gotCmd = cmd
	return m.err
}

func testPayment(t *testing.T) *payment.Payment {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	externalID := "ch_123"
	pay, err := payment.ReconstructPayment(payment.PaymentReconstructParams{
		ID:             3,
		SID:            "pay_def456",
		SubscriptionID: 1,
		TenantID:       2,
		Amount:         paymentVO.NewMoney(9990, "BRL"),
		Tax:            paymentVO.NewMoney(0, "BRL"),
		Status:         paymentVO.PaymentPaid,
		ExternalID:     &externalID,
		ChargeKey:      "sub:1:2024-03-01",
		Version:        2,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	return pay
}

func paymentTestEngine(h *PaymentHandler, wh *WebhookHandler) *gin.Engine {
	engine := gin.New()
	engine.GET("/subscriptions/:sid/payments", h.ListPayments)
	engine.GET("/payments/:sid/logs", h.ListPaymentLogs)
	engine.POST("/webhooks/gateway", wh.HandleGatewayWebhook)
	return engine
}

func TestPaymentHandler_ListPayments(t *testing.T) {
	getSubUC := &mockGetSubscriptionUC{result: testSubscription(t, vo.StatusActive)}
	listUC := &mockListPaymentsUC{
		result:     []*payment.Payment{testPayment(t)},
		pageResult: utils.PageResult{NextPage: -1, TotalPages: 1, Total: 1},
	}
	h := NewPaymentHandler(getSubUC, &mockGetPaymentUC{}, listUC, &mockListPaymentLogsUC{}, newNopLogger())
	wh := NewWebhookHandler(&mockHandleGatewayResultUC{}, newNopLogger())
	engine := paymentTestEngine(h, wh)

	w := performRequest(engine, http.MethodGet, "/subscriptions/sub_abc123/payments", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), listUC.gotQuery.SubscriptionID)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "pay_def456", first["sid"])
	assert.Equal(t, "paid", first["status"])
	assert.Equal(t, "ch_123", first["external_id"])
}

func TestPaymentHandler_ListPaymentsUnknownSubscription(t *testing.T) {
	getSubUC := &mockGetSubscriptionUC{err: apperrors.NewNotFoundError("subscription not found")}
	h := NewPaymentHandler(getSubUC, &mockGetPaymentUC{}, &mockListPaymentsUC{}, &mockListPaymentLogsUC{}, newNopLogger())
	wh := NewWebhookHandler(&mockHandleGatewayResultUC{}, newNopLogger())
	engine := paymentTestEngine(h, wh)

	w := performRequest(engine, http.MethodGet, "/subscriptions/sub_nope/payments", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_ListPaymentLogs(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	log := payment.ReconstructPaymentLog(1, 3, "ch_123", []byte(`{"status":"paid"}`), now)

	getPayUC := &mockGetPaymentUC{result: testPayment(t)}
	listLogsUC := &mockListPaymentLogsUC{
		result:     []*payment.PaymentLog{log},
		pageResult: utils.PageResult{NextPage: -1, TotalPages: 1, Total: 1},
	}
	h := NewPaymentHandler(&mockGetSubscriptionUC{}, getPayUC, &mockListPaymentsUC{}, listLogsUC, newNopLogger())
	wh := NewWebhookHandler(&mockHandleGatewayResultUC{}, newNopLogger())
	engine := paymentTestEngine(h, wh)

	w := performRequest(engine, http.MethodGet, "/payments/pay_def456/logs", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), listLogsUC.gotQuery.PaymentID)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "ch_123", first["external_id"])
	assert.JSONEq(t, `{"status":"paid"}`, first["payload"].(string))
}

func TestWebhookHandler_HandleGatewayWebhook(t *testing.T) {
	handleUC := &mockHandleGatewayResultUC{}
	h := NewPaymentHandler(&mockGetSubscriptionUC{}, &mockGetPaymentUC{}, &mockListPaymentsUC{}, &mockListPaymentLogsUC{}, newNopLogger())
	wh := NewWebhookHandler(handleUC, newNopLogger())
	engine := paymentTestEngine(h, wh)

	w := performRequest(engine, http.MethodPost, "/webhooks/gateway", gin.H{
		"id":             "ch_123",
		"status":         "rejected",
		"refusal_reason": "insufficient_funds",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, handleUC.called)
	assert.Equal(t, "ch_123", handleUC.gotCmd.ExternalID)
	assert.Equal(t, "rejected", handleUC.gotCmd.Status)
	assert.Equal(t, "insufficient_funds", handleUC.gotCmd.RefusalReason)
	assert.NotEmpty(t, handleUC.gotCmd.RawPayload)
}

func TestWebhookHandler_MalformedBody(t *testing.T) {
	handleUC := &mockHandleGatewayResultUC{}
	wh := NewWebhookHandler(handleUC, newNopLogger())

	engine := gin.New()
	engine.POST("/webhooks/gateway", wh.HandleGatewayWebhook)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/gateway", strings.NewReader("not-json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, handleUC.called)
}
