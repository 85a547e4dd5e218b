package domain

import "time"

// OrderStatus is the internal lifecycle of a recorded payment. Orders are
// created pending and only the assigned moderator moves them out of it.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidTransition reports whether s is a legal target for an order leaving
// the pending state.
func (s OrderStatus) ValidTransition() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order records a completed checkout against a Scholarship. TransactionID is
// the payment provider's permanent charge reference and is unique across all
// orders; it is the deduplication key for reconciliation.
//
// ModeratorEmail and ModeratorName are a snapshot of the scholarship's
// moderator taken when the order was written. Later reassignment of the
// scholarship does not change who owns already-placed orders.
type Order struct {
	ID             string
	SessionID      string
	TransactionID  string
	ScholarshipID  string
	StudentEmail   string
	AmountPaid     int64
	PaymentStatus  string
	Status         OrderStatus
	ModeratorEmail string
	ModeratorName  string
	CreatedAt      time.Time
}
