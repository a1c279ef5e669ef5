package models

// Order statuses
const (
	StatusPendingPayment      = "pending_payment"
	StatusAwaitingPreparation = "awaiting_preparation"
	StatusInPreparation       = "in_preparation"
	StatusReadyForPickup      = "ready_for_pickup"
	StatusInDelivery          = "in_delivery"
	StatusComplete            = "complete"
	StatusCancelled           = "cancelled"
)

// allowedTransitions is the single source of truth for the order lifecycle.
// Every status write goes through CanTransition; there are no other paths
// between states.
var allowedTransitions = map[string][]string{
	StatusPendingPayment:      {StatusAwaitingPreparation, StatusCancelled},
	StatusAwaitingPreparation: {StatusInPreparation, StatusCancelled},
	StatusInPreparation:       {StatusReadyForPickup, StatusInDelivery, StatusCancelled},
	StatusReadyForPickup:      {StatusComplete, StatusCancelled},
	StatusInDelivery:          {StatusComplete, StatusCancelled},
	StatusComplete:            {},
	StatusCancelled:           {},
}

// CanTransition reports whether an order in `from` may move to `to`.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ActiveStatuses are the pre-completion statuses shown on kitchen and
// dashboard screens.
var ActiveStatuses = []string{
	StatusPendingPayment,
	StatusAwaitingPreparation,
	StatusInPreparation,
	StatusReadyForPickup,
	StatusInDelivery,
}

// ArchivedStatuses back the view=archived listing.
var ArchivedStatuses = []string{StatusComplete}

// DefaultViewStatuses is the fixed set returned when no view is requested:
// everything except cancelled orders.
var DefaultViewStatuses = append(append([]string{}, ActiveStatuses...), StatusComplete)
