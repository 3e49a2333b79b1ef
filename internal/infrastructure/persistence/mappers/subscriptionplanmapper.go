package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/subscription"
	vo "github.com/faturo-inc/faturo/internal/domain/subscription/valueobjects"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
)

// planItemRecord is the JSON shape of one catalog item reference.
type planItemRecord struct {
	ItemID uint   `json:"item_id"`
	Name   string `json:"name"`
}

func SubscriptionPlanToModel(p *subscription.SubscriptionPlan) (*models.SubscriptionPlanModel, error) {
	items := p.Items()
	records := make([]planItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, planItemRecord{ItemID: item.ItemID, Name: item.Name})
	}

	itemsJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan items: %w", err)
	}

	return &models.SubscriptionPlanModel{
		ID:              p.ID(),
		SID:             p.SID(),
		TenantID:        p.TenantID(),
		Name:            p.Name(),
		AmountInCents:   p.Price().AmountInCents(),
		Currency:        p.Price().Currency(),
		Recurrence:      p.Recurrence().String(),
		TermURL:         p.TermURL(),
		Items:           itemsJSON,
		NextBillingDate: p.NextBillingDate(),
		Version:         p.Version(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}, nil
}

func SubscriptionPlanToDomain(model *models.SubscriptionPlanModel) (*subscription.SubscriptionPlan, error) {
	recurrence, err := vo.ParseRecurrence(model.Recurrence)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recurrence: %w", err)
	}

	var records []planItemRecord
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan items: %w", err)
		}
	}

	items := make([]vo.PlanItem, 0, len(records))
	for _, record := range records {
		item, err := vo.NewPlanItem(record.ItemID, record.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid plan item: %w", err)
		}
		items = append(items, item)
	}

	return subscription.ReconstructSubscriptionPlan(subscription.PlanReconstructParams{
		ID:              model.ID,
		SID:             model.SID,
		TenantID:        model.TenantID,
		Name:            model.Name,
		Price:           vo.NewPrice(model.AmountInCents, model.Currency),
		Recurrence:      recurrence,
		TermURL:         model.TermURL,
		Items:           items,
		NextBillingDate: model.NextBillingDate,
		Version:         model.Version,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
}

func SubscriptionPlansToDomain(planModels []models.SubscriptionPlanModel) ([]*subscription.SubscriptionPlan, error) {
	plans := make([]*subscription.SubscriptionPlan, 0, len(planModels))
	for i := range planModels {
		plan, err := SubscriptionPlanToDomain(&planModels[i])
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
