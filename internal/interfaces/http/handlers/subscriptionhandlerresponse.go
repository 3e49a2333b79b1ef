package handlers

import (
	"time"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
)

type SubscriptionResponse struct {
	SID          string  `json:"sid"`
	SubscriberID uint    `json:"subscriber_id"`
	PlanID       uint    `json:"plan_id"`
	TenantID     uint    `json:"tenant_id"`
	Status       string  `json:"status"`
	StartedAt    *string `json:"started_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func subscriptionToResponse(sub *subscription.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		SID:          sub.SID(),
		SubscriberID: sub.SubscriberID(),
		PlanID:       sub.PlanID(),
		TenantID:     sub.TenantID(),
		Status:       sub.Status().String(),
		CreatedAt:    sub.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    sub.UpdatedAt().Format(time.RFC3339),
	}
	if startedAt := sub.StartedAt(); startedAt != nil {
		s := startedAt.Format(time.RFC3339)
		resp.StartedAt = &s
	}
	return resp
}
