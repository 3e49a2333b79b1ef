package mappers

import (
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:           s.ID(),
		SID:          s.SID(),
		SubscriberID: s.SubscriberID(),
		PlanID:       s.PlanID(),
		TenantID:     s.TenantID(),
		Status:       s.Status().String(),
		StartedAt:    s.StartedAt(),
		Version:      s.Version(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
	}
}

func SubscriptionToDomain(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	return subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:           model.ID,
		SID:          model.SID,
		SubscriberID: model.SubscriberID,
		PlanID:       model.PlanID,
		TenantID:     model.TenantID,
		Status:       status,
		StartedAt:    model.StartedAt,
		Version:      model.Version,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
}

func SubscriptionsToDomain(subscriptionModels []models.SubscriptionModel) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for i := range subscriptionModels {
		sub, err := SubscriptionToDomain(&subscriptionModels[i])
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
