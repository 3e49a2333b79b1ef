package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/application/subscription/usecases"
	"github.com/faturo-inc/faturo/internal/domain/subscription"
	"github.com/faturo-inc/faturo/internal/shared/logger"
	"github.com/faturo-inc/faturo/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC createPlanUseCase
	getPlanUC    getPlanUseCase
	listPlansUC  listPlansUseCase
	updatePlanUC updatePlanUseCase
	logger       logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listPlansUseCase,
	updatePlanUC updatePlanUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC: createPlanUC,
		getPlanUC:    getPlanUC,
		listPlansUC:  listPlansUC,
		updatePlanUC: updatePlanUC,
		logger:       logger,
	}
}

type PlanItemRequest struct {
	ItemID uint   `json:"item_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

type CreatePlanRequest struct {
	TenantID      uint              `json:"tenant_id" binding:"required"`
	Name          string            `json:"name" binding:"required"`
	AmountInCents int64             `json:"amount_in_cents" binding:"required"`
	Currency      string            `json:"currency"`
	Recurrence    string            `json:"recurrence" binding:"required,oneof=monthly annually"`
	TermURL       *string           `json:"term_url"`
	Items         []PlanItemRequest `json:"items"`
}

type UpdatePlanRequest struct {
	Name          string            `json:"name" binding:"required"`
	AmountInCents int64             `json:"amount_in_cents" binding:"required"`
	Currency      string            `json:"currency"`
	TermURL       *string           `json:"term_url"`
	Items         []PlanItemRequest `json:"items"`
}

type PlanItemResponse struct {
	ItemID uint   `json:"item_id"`
	Name   string `json:"name"`
}

type PlanResponse struct {
	SID             string             `json:"sid"`
	TenantID        uint               `json:"tenant_id"`
	Name            string             `json:"name"`
	AmountInCents   int64              `json:"amount_in_cents"`
	Currency        string             `json:"currency"`
	Recurrence      string             `json:"recurrence"`
	TermURL         *string            `json:"term_url,omitempty"`
	Items           []PlanItemResponse `json:"items"`
	NextBillingDate *string            `json:"next_billing_date,omitempty"`
	CreatedAt       string             `json:"created_at"`
	UpdatedAt       string             `json:"updated_at"`
}

func planToResponse(plan *subscription.SubscriptionPlan) PlanResponse {
	items := make([]PlanItemResponse, 0, len(plan.Items()))
	for _, item := range plan.Items() {
		items = append(items, PlanItemResponse{ItemID: item.ItemID, Name: item.Name})
	}

	resp := PlanResponse{
		SID:           plan.SID(),
		TenantID:      plan.TenantID(),
		Name:          plan.Name(),
		AmountInCents: plan.Price().AmountInCents(),
		Currency:      plan.Price().Currency(),
		Recurrence:    plan.Recurrence().String(),
		TermURL:       plan.TermURL(),
		Items:         items,
		CreatedAt:     plan.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     plan.UpdatedAt().Format(time.RFC3339),
	}
	if next := plan.NextBillingDate(); next != nil {
		s := next.Format(time.RFC3339)
		resp.NextBillingDate = &s
	}
	return resp
}

func itemInputs(items []PlanItemRequest) []usecases.PlanItemInput {
	inputs := make([]usecases.PlanItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, usecases.PlanItemInput{ItemID: item.ItemID, Name: item.Name})
	}
	return inputs
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := usecases.CreatePlanCommand{
		TenantID:      req.TenantID,
		Name:          req.Name,
		AmountInCents: req.AmountInCents,
		Currency:      req.Currency,
		Recurrence:    req.Recurrence,
		TermURL:       req.TermURL,
		Items:         itemInputs(req.Items),
	}

	plan, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, planToResponse(plan), "Plan created successfully")
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	sid := c.Param("sid")

	plan, err := h.getPlanUC.Execute(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", planToResponse(plan))
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	tenantID, err := strconv.ParseUint(c.Query("tenant_id"), 10, 64)
	if err != nil || tenantID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "tenant_id query parameter is required")
		return
	}

	pagination := utils.ParsePagination(c)

	plans, pageResult, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlansQuery{
		TenantID:   uint(tenantID),
		Pagination: pagination,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		items = append(items, planToResponse(plan))
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      items,
		Total:      pageResult.Total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: pageResult.TotalPages,
	})
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	sid := c.Param("sid")

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan",
			"plan_sid", sid,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	cmd := usecases.UpdatePlanCommand{
		PlanSID:       sid,
		Name:          req.Name,
		AmountInCents: req.AmountInCents,
		Currency:      req.Currency,
		TermURL:       req.TermURL,
		Items:         itemInputs(req.Items),
	}

	plan, err := h.updatePlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", planToResponse(plan))
}
