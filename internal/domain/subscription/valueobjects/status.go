package valueobjects

type SubscriptionStatus string

const (
	StatusPending  SubscriptionStatus = "pending"
	StatusActive   SubscriptionStatus = "active"
	StatusPaused   SubscriptionStatus = "paused"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusFinished SubscriptionStatus = "finished"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status accepts no further transitions.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCanceled || s == StatusFinished
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusPending:  {StatusActive, StatusCanceled},
		StatusActive:   {StatusPaused, StatusCanceled, StatusFinished},
		StatusPaused:   {StatusActive, StatusCanceled},
		StatusCanceled: {},
		StatusFinished: {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:  true,
	StatusActive:   true,
	StatusPaused:   true,
	StatusCanceled: true,
	StatusFinished: true,
}
