package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/application/billing"
	subUsecases "github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC createSubscriptionUseCase
	getSubscriptionUC    getSubscriptionUseCase
	updateSubscriptionUC updateSubscriptionUseCase
	logger               logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC createSubscriptionUseCase,
	getSubscriptionUC getSubscriptionUseCase,
	updateSubscriptionUC updateSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC: createSubscriptionUC,
		getSubscriptionUC:    getSubscriptionUC,
		updateSubscriptionUC: updateSubscriptionUC,
		logger:               logger,
	}
}

type CreateSubscriptionRequest struct {
	SubscriberID uint `json:"subscriber_id" binding:"required"`
	PlanID       uint `json:"plan_id" binding:"required"`
	TenantID     uint `json:"tenant_id" binding:"required"`
}

type UpdateSubscriptionRequest struct {
	PauseSubscription bool   `json:"pause_subscription"`
	Reason            string `json:"reason"`
	CustomerEmail     string `json:"customer_email"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := subUsecases.CreateSubscriptionCommand{
		SubscriberID: req.SubscriberID,
		PlanID:       req.PlanID,
		TenantID:     req.TenantID,
	}

	sub, err := h.createSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subscriptionToResponse(sub), "Subscription created successfully")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	sid := c.Param("sid")

	sub, err := h.getSubscriptionUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", subscriptionToResponse(sub))
}

// UpdateSubscription pauses or resumes a subscription. Resuming advances the
// plan's billing date; both outcomes notify the customer by email when an
// address is provided.
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	sid := c.Param("sid")

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update subscription",
			"subscription_sid", sid,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	sub, err := h.getSubscriptionUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := billing.UpdateSubscriptionCommand{
		SubscriptionID:    sub.ID(),
		CustomerEmail:     req.CustomerEmail,
		PauseSubscription: req.PauseSubscription,
		Reason:            req.Reason,
	}

	if err := h.updateSubscriptionUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	updated, err := h.getSubscriptionUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", subscriptionToResponse(updated))
}
