package valueobjects

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
	PaymentCanceled PaymentStatus = "canceled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the payment reached a final settlement state.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentPaid || s == PaymentRejected || s == PaymentCanceled
}

var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentPending:  true,
	PaymentPaid:     true,
	PaymentRejected: true,
	PaymentCanceled: true,
}
