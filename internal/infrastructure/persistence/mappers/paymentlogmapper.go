package mappers

import (
	"github.com/faturo-inc/faturo/internal/domain/payment"
	"github.com/faturo-inc/faturo/internal/infrastructure/persistence/models"
)

func PaymentLogToModel(l *payment.PaymentLog) *models.PaymentLogModel {
	return &models.PaymentLogModel{
		ID:         l.ID(),
		PaymentID:  l.PaymentID(),
		ExternalID: l.ExternalID(),
		Payload:    l.Payload(),
		CreatedAt:  l.CreatedAt(),
	}
}

func PaymentLogToDomain(model *models.PaymentLogModel) *payment.PaymentLog {
	return payment.ReconstructPaymentLog(model.ID, model.PaymentID, model.ExternalID, model.Payload, model.CreatedAt)
}

func PaymentLogsToDomain(logModels []models.PaymentLogModel) []*payment.PaymentLog {
	logs := make([]*payment.PaymentLog, 0, len(logModels))
	for i := range logModels {
		logs = append(logs, PaymentLogToDomain(&logModels[i]))
	}
	return logs
}
