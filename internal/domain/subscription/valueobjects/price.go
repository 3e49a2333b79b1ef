package valueobjects

import "fmt"

// Price is the recurring amount charged per billing cycle, held in the
// smallest currency unit to avoid floating point drift in storage.
type Price struct {
	amountInCents int64
	currency      string
}

func NewPrice(amountInCents int64, currency string) Price {
	if currency == "" {
		currency = "BRL"
	}
	return Price{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

func (p Price) AmountInCents() int64 {
	return p.amountInCents
}

func (p Price) Currency() string {
	return p.currency
}

// Amount returns the price in currency units, the representation carried by
// charge messages.
func (p Price) Amount() float64 {
	return float64(p.amountInCents) / 100.0
}

func (p Price) IsPositive() bool {
	return p.amountInCents > 0
}

func (p Price) Equals(other Price) bool {
	return p.amountInCents == other.amountInCents && p.currency == other.currency
}

func (p Price) String() string {
	return fmt.Sprintf("%.2f %s", p.Amount(), p.currency)
}
