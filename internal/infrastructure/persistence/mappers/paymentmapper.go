package mappers

import (
	"fmt"

	"github.com/faturo-inc/faturo/internal/domain/payment"
	vo "github.com/faturo-inc/faturo/internal/domain/payment/valueobjects"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:             p.ID(),
		SID:            p.SID(),
		SubscriptionID: p.SubscriptionID(),
		TenantID:       p.TenantID(),
		AmountInCents:  p.Amount().AmountInCents(),
		TaxInCents:     p.Tax().AmountInCents(),
		Currency:       p.Amount().Currency(),
		Status:         p.Status().String(),
		RefusalReason:  p.RefusalReason(),
		ExternalID:     p.ExternalID(),
		ChargeKey:      p.ChargeKey(),
		Version:        p.Version(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func PaymentToDomain(model *models.PaymentModel) (*payment.Payment, error) {
	status := vo.PaymentStatus(model.Status)
	if !vo.ValidPaymentStatuses[status] {
		return nil, fmt.Errorf("invalid payment status: %s", model.Status)
	}

	return payment.ReconstructPayment(payment.PaymentReconstructParams{
		ID:             model.ID,
		SID:            model.SID,
		SubscriptionID: model.SubscriptionID,
		TenantID:       model.TenantID,
		Amount:         vo.NewMoney(model.AmountInCents, model.Currency),
		Tax:            vo.NewMoney(model.TaxInCents, model.Currency),
		Status:         status,
		RefusalReason:  model.RefusalReason,
		ExternalID:     model.ExternalID,
		ChargeKey:      model.ChargeKey,
		Version:        model.Version,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}

func PaymentsToDomain(paymentModels []models.PaymentModel) ([]*payment.Payment, error) {
	payments := make([]*payment.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		pay, err := PaymentToDomain(&paymentModels[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, pay)
	}
	return payments, nil
}
