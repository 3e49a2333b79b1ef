package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	paymentUsecases "github.com/faturo-inc/faturo/internal/application/payment/usecases"
	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type PaymentHandler struct {
	getSubscriptionUC getSubscriptionUseCase
	getPaymentUC      getPaymentUseCase
	listPaymentsUC    listPaymentsUseCase
	listPaymentLogsUC listPaymentLogsUseCase
	logger            logger.Interface
}

func NewPaymentHandler(
	getSubscriptionUC getSubscriptionUseCase,
	getPaymentUC getPaymentUseCase,
	listPaymentsUC listPaymentsUseCase,
	listPaymentLogsUC listPaymentLogsUseCase,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		getSubscriptionUC: getSubscriptionUC,
		getPaymentUC:      getPaymentUC,
		listPaymentsUC:    listPaymentsUC,
		listPaymentLogsUC: listPaymentLogsUC,
		logger:            logger,
	}
}

type PaymentResponse struct {
	SID            string  `json:"sid"`
	SubscriptionID uint    `json:"subscription_id"`
	AmountInCents  int64   `json:"amount_in_cents"`
	TaxInCents     int64   `json:"tax_in_cents"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	RefusalReason  *string `json:"refusal_reason,omitempty"`
	ExternalID     *string `json:"external_id,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type PaymentLogResponse struct {
	ExternalID string `json:"external_id"`
	Payload    string `json:"payload"`
	CreatedAt  string `json:"created_at"`
}

func paymentToResponse(pay *payment.Payment) PaymentResponse {
	return PaymentResponse{
		SID:            pay.SID(),
		SubscriptionID: pay.SubscriptionID(),
		AmountInCents:  pay.Amount().AmountInCents(),
		TaxInCents:     pay.Tax().AmountInCents(),
		Currency:       pay.Amount().Currency(),
		Status:         pay.Status().String(),
		RefusalReason:  pay.RefusalReason(),
		ExternalID:     pay.ExternalID(),
		CreatedAt:      pay.CreatedAt().Format(time.RFC3339),
		UpdatedAt:      pay.UpdatedAt().Format(time.RFC3339),
	}
}

// ListPayments returns the payment history of one subscription, newest first.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	sid := c.Param("sid")

	sub, err := h.getSubscriptionUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)

	payments, pageResult, err := h.listPaymentsUC.Execute(c.Request.Context(), paymentUsecases.ListPaymentsQuery{
		SubscriptionID: sub.ID(),
		Pagination:     pagination,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]PaymentResponse, 0, len(payments))
	for _, pay := range payments {
		items = append(items, paymentToResponse(pay))
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      items,
		Total:      pageResult.Total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: pageResult.TotalPages,
	})
}

// ListPaymentLogs returns the raw gateway interaction history for one
// payment, the recovery trail for disputed or ambiguous charges.
func (h *PaymentHandler) ListPaymentLogs(c *gin.Context) {
	sid := c.Param("sid")

	pay, err := h.getPaymentUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)

	logs, pageResult, err := h.listPaymentLogsUC.Execute(c.Request.Context(), paymentUsecases.ListPaymentLogsQuery{
		PaymentID:  pay.ID(),
		Pagination: pagination,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]PaymentLogResponse, 0, len(logs))
	for _, log := range logs {
		items = append(items, PaymentLogResponse{
			ExternalID: log.ExternalID(),
			Payload:    string(log.Payload()),
			CreatedAt:  log.CreatedAt().Format(time.RFC3339),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      items,
		Total:      pageResult.Total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: pageResult.TotalPages,
	})
}
