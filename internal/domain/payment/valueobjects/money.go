package valueobjects

import "fmt"

// Money is an amount in the smallest currency unit. Arithmetic on floats
// never touches persisted values; Amount is only for outbound representations.
type Money struct {
	amountInCents int64
	currency      string
}

func NewMoney(amountInCents int64, currency string) Money {
	if currency == "" {
		currency = "BRL"
	}
	return Money{
		amountInCents: amountInCents,
		currency:      currency,
	}
}

func (m Money) AmountInCents() int64 {
	return m.amountInCents
}

func (m Money) Currency() string {
	return m.currency
}

// Amount returns the value in currency units.
func (m Money) Amount() float64 {
	return float64(m.amountInCents) / 100
}

func (m Money) IsPositive() bool {
	return m.amountInCents > 0
}

func (m Money) Equals(other Money) bool {
	return m.amountInCents == other.amountInCents && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.currency, m.Amount())
}
