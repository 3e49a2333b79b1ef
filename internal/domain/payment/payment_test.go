package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/faturo-inc/faturo/internal/domain/payment/valueobjects"
	apperrors "github.com/faturo-inc/faturo/internal/shared/errors"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	pay, err := NewPayment(7, 1, vo.NewMoney(9990, "BRL"), vo.NewMoney(150, "BRL"), "sub:7:2024-03-15")
	require.NoError(t, err)
	return pay
}

func TestBuildChargeKey(t *testing.T) {
	period := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "sub:7:2024-03-15", BuildChargeKey(7, period))
}

func TestNewPayment(t *testing.T) {
	pay := newTestPayment(t)

	assert.Equal(t, vo.PaymentPending, pay.Status())
	assert.Equal(t, uint(7), pay.SubscriptionID())
	assert.Equal(t, int64(9990), pay.Amount().AmountInCents())
	assert.Equal(t, int64(150), pay.Tax().AmountInCents())
	assert.Nil(t, pay.ExternalID())
	assert.Nil(t, pay.RefusalReason())
	assert.Contains(t, pay.SID(), "pay_")
}

func TestNewPaymentValidation(t *testing.T) {
	_, err := NewPayment(0, 1, vo.NewMoney(100, "BRL"), vo.Money{}, "sub:0:x")
	assert.Error(t, err)

	_, err = NewPayment(7, 0, vo.NewMoney(100, "BRL"), vo.Money{}, "sub:7:x")
	assert.Error(t, err)

	_, err = NewPayment(7, 1, vo.NewMoney(0, "BRL"), vo.Money{}, "sub:7:x")
	assert.Error(t, err)

	_, err = NewPayment(7, 1, vo.NewMoney(100, "BRL"), vo.Money{}, "")
	assert.Error(t, err)
}

func TestPaymentMarkAsPaid(t *testing.T) {
	pay := newTestPayment(t)

	require.NoError(t, pay.MarkAsPaid("ch_abc"))

	assert.Equal(t, vo.PaymentPaid, pay.Status())
	require.NotNil(t, pay.ExternalID())
	assert.Equal(t, "ch_abc", *pay.ExternalID())
	assert.False(t, pay.IsPending())
}

func TestPaymentMarkAsPaidReplay(t *testing.T) {
	pay := newTestPayment(t)
	require.NoError(t, pay.MarkAsPaid("ch_abc"))
	version := pay.Version()

	// same result, same external id: no-op
	require.NoError(t, pay.MarkAsPaid("ch_abc"))
	assert.Equal(t, version, pay.Version())
}

func TestPaymentConflictingTerminalResult(t *testing.T) {
	pay := newTestPayment(t)
	require.NoError(t, pay.MarkAsPaid("ch_abc"))

	err := pay.MarkAsRejected("ch_abc", "cartao recusado")
	require.Error(t, err)
	assert.True(t, apperrors.DomainErrorHasReason(err, ReasonPaid))
	assert.Equal(t, vo.PaymentPaid, pay.Status())

	err = pay.MarkAsCanceled("ch_other")
	require.Error(t, err)
	assert.True(t, apperrors.DomainErrorHasReason(err, ReasonPaid))
}

func TestPaymentMarkAsRejected(t *testing.T) {
	pay := newTestPayment(t)

	require.NoError(t, pay.MarkAsRejected("ch_abc", "saldo insuficiente"))

	assert.Equal(t, vo.PaymentRejected, pay.Status())
	require.NotNil(t, pay.RefusalReason())
	assert.Equal(t, "saldo insuficiente", *pay.RefusalReason())

	// replay is a no-op
	require.NoError(t, pay.MarkAsRejected("ch_abc", "saldo insuficiente"))

	err := pay.MarkAsPaid("ch_abc")
	require.Error(t, err)
	assert.True(t, apperrors.DomainErrorHasReason(err, ReasonRejected))
}

func TestPaymentMarkAsCanceled(t *testing.T) {
	pay := newTestPayment(t)

	require.NoError(t, pay.MarkAsCanceled("ch_abc"))
	assert.Equal(t, vo.PaymentCanceled, pay.Status())

	err := pay.MarkAsPaid("ch_abc")
	require.Error(t, err)
	assert.True(t, apperrors.DomainErrorHasReason(err, ReasonCanceled))
}

func TestPaymentRequiresExternalID(t *testing.T) {
	pay := newTestPayment(t)

	assert.Error(t, pay.MarkAsPaid(""))
	assert.Error(t, pay.MarkAsRejected("", "x"))
	assert.Error(t, pay.MarkAsCanceled(""))
	assert.Equal(t, vo.PaymentPending, pay.Status())
}

func TestPaymentAttachExternalID(t *testing.T) {
	pay := newTestPayment(t)

	require.NoError(t, pay.AttachExternalID("ch_abc"))
	require.NotNil(t, pay.ExternalID())
	assert.Equal(t, "ch_abc", *pay.ExternalID())

	// idempotent for the same reference
	require.NoError(t, pay.AttachExternalID("ch_abc"))

	assert.Error(t, pay.AttachExternalID("ch_other"))
	assert.Error(t, pay.AttachExternalID(""))
}

func TestReconstructPayment(t *testing.T) {
	now := time.Now().UTC()
	extID := "ch_abc"

	pay, err := ReconstructPayment(PaymentReconstructParams{
		ID:             3,
		SID:            "pay_abc123",
		SubscriptionID: 7,
		TenantID:       1,
		Amount:         vo.NewMoney(9990, "BRL"),
		Status:         vo.PaymentPaid,
		ExternalID:     &extID,
		ChargeKey:      "sub:7:2024-03-15",
		Version:        2,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), pay.ID())
	assert.Equal(t, vo.PaymentPaid, pay.Status())

	_, err = ReconstructPayment(PaymentReconstructParams{ID: 3, Status: "weird", ChargeKey: "x"})
	assert.Error(t, err)
}

func TestNewPaymentLog(t *testing.T) {
	log, err := NewPaymentLog(3, "ch_abc", []byte(`{"status":"paid"}`))
	require.NoError(t, err)
	assert.Equal(t, uint(3), log.PaymentID())
	assert.Equal(t, "ch_abc", log.ExternalID())
	assert.JSONEq(t, `{"status":"paid"}`, string(log.Payload()))

	log, err = NewPaymentLog(3, "ch_abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(log.Payload()))

	_, err = NewPaymentLog(0, "ch_abc", nil)
	assert.Error(t, err)
}
