package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/application/payment/usecases"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

// WebhookHandler receives asynchronous charge notifications from the payment
// provider. The raw body is preserved verbatim in the payment log.
type WebhookHandler struct {
	handleResultUC handleGatewayResultUseCase
	logger         logger.Interface
}

func NewWebhookHandler(handleResultUC handleGatewayResultUseCase, logger logger.Interface) *WebhookHandler {
	return &WebhookHandler{
		handleResultUC: handleResultUC,
		logger:         logger,
	}
}

type gatewayWebhookBody struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	RefusalReason string `json:"refusal_reason"`
}

func (h *WebhookHandler) HandleGatewayWebhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.logger.Errorw("failed to read webhook body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	var body gatewayWebhookBody
	if err := json.Unmarshal(raw, &body); err != nil {
		h.logger.Warnw("malformed webhook payload", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "malformed payload")
		return
	}

	cmd := usecases.HandleGatewayResultCommand{
		ExternalID:    body.ID,
		Status:        body.Status,
		RefusalReason: body.RefusalReason,
		RawPayload:    raw,
	}

	if err := h.handleResultUC.Execute(c.Request.Context(), cmd); err != nil {
		h.logger.Errorw("failed to process gateway webhook",
			"error", err,
			"external_id", body.ID,
			"status", body.Status)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "webhook processed", nil)
}
