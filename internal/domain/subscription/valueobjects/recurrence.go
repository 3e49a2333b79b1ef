package valueobjects

import (
	"fmt"
	"strings"
	"time"
)

type Recurrence string

const (
	RecurrenceMonthly  Recurrence = "monthly"
	RecurrenceAnnually Recurrence = "annually"
)

var ValidRecurrences = map[Recurrence]bool{
	RecurrenceMonthly:  true,
	RecurrenceAnnually: true,
}

func ParseRecurrence(value string) (Recurrence, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	recurrence := Recurrence(normalized)

	if normalized == "" {
		return "", fmt.Errorf("recurrence cannot be empty")
	}

	if !ValidRecurrences[recurrence] {
		return "", fmt.Errorf("invalid recurrence: %s", value)
	}

	return recurrence, nil
}

func (r Recurrence) String() string {
	return string(r)
}

func (r Recurrence) IsValid() bool {
	return ValidRecurrences[r]
}

// Next returns the billing date one recurrence unit after from, using exact
// calendar arithmetic. The day-of-month is clamped to the target month's last
// day, so Jan 31 advances to Feb 29 on leap years rather than rolling over
// into March the way time.AddDate would.
func (r Recurrence) Next(from time.Time) time.Time {
	switch r {
	case RecurrenceMonthly:
		return addMonthsClamped(from, 1)
	case RecurrenceAnnually:
		return addYearsClamped(from, 1)
	default:
		return from
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	// Anchor at the first of the month so AddDate cannot overflow.
	anchor := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := anchor.AddDate(0, months, 0)

	last := daysInMonth(target.Year(), target.Month())
	if day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addYearsClamped(t time.Time, years int) time.Time {
	return addMonthsClamped(t, years*12)
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
