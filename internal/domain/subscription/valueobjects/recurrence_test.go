package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecurrence(t *testing.T) {
	r, err := ParseRecurrence("monthly")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceMonthly, r)

	r, err = ParseRecurrence("annually")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceAnnually, r)

	_, err = ParseRecurrence("weekly")
	assert.Error(t, err)
}

func TestRecurrenceNextMonthly(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "mid month",
			from: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "jan 31 clamps to leap feb 29",
			from: time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "jan 31 clamps to feb 28 off leap year",
			from: time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "may 31 clamps to june 30",
			from: time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "preserves time of day",
			from: time.Date(2024, time.March, 15, 9, 30, 45, 0, time.UTC),
			want: time.Date(2024, time.April, 15, 9, 30, 45, 0, time.UTC),
		},
		{
			name: "december rolls into next year",
			from: time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecurrenceMonthly.Next(tt.from))
		})
	}
}

func TestRecurrenceNextAnnually(t *testing.T) {
	got := RecurrenceAnnually.Next(time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), got)

	// feb 29 on a leap year clamps to feb 28 the following year
	got = RecurrenceAnnually.Next(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), got)
}

func TestPriceAmount(t *testing.T) {
	p := NewPrice(9990, "BRL")
	assert.Equal(t, 99.90, p.Amount())
	assert.Equal(t, "BRL", p.Currency())
	assert.True(t, p.IsPositive())

	assert.False(t, NewPrice(0, "BRL").IsPositive())
}

func TestNewPlanItem(t *testing.T) {
	item, err := NewPlanItem(3, "Curso de Go")
	require.NoError(t, err)
	assert.Equal(t, uint(3), item.ItemID)
	assert.Equal(t, "Curso de Go", item.Name)

	_, err = NewPlanItem(0, "Curso de Go")
	assert.Error(t, err)

	_, err = NewPlanItem(3, "")
	assert.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusActive))
	assert.True(t, StatusPending.CanTransitionTo(StatusCanceled))
	assert.False(t, StatusPending.CanTransitionTo(StatusPaused))

	assert.True(t, StatusActive.CanTransitionTo(StatusPaused))
	assert.True(t, StatusActive.CanTransitionTo(StatusFinished))

	assert.True(t, StatusPaused.CanTransitionTo(StatusActive))
	assert.False(t, StatusPaused.CanTransitionTo(StatusFinished))

	assert.False(t, StatusCanceled.CanTransitionTo(StatusActive))
	assert.False(t, StatusFinished.CanTransitionTo(StatusActive))

	assert.True(t, StatusCanceled.IsTerminal())
	assert.True(t, StatusFinished.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
}
