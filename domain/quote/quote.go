// Package quote provides quote value types and pure functions.
package quote

import "time"

// Status is the lifecycle state of a quote.
type Status string

const (
	StatusAwaiting Status = "awaiting"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

// DefaultStatus is applied when a quote is created without a status.
const DefaultStatus = StatusAwaiting

// Statuses lists every valid status value, for enum validation.
func Statuses() []string {
	return []string{
		string(StatusAwaiting),
		string(StatusApproved),
		string(StatusRejected),
		string(StatusDone),
		string(StatusCanceled),
	}
}

// transitions maps each status to the states reachable from it.
// Rejected, done and canceled are terminal.
var transitions = map[Status][]Status{
	StatusAwaiting: {StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved: {StatusDone, StatusCanceled},
}

// ValidTransition reports whether a quote may move from one status to
// another. This is a PURE function.
func ValidTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Quote represents a customer quote (value type).
type Quote struct {
	ID         string
	Code       string
	CustomerID string
	SalesmanID string
	Status     Status
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// ServiceLine is the quote↔service join row. Quantity and price live here,
// not on the service itself: a price override applies to this quote only.
type ServiceLine struct {
	QuoteID   string
	ServiceID string
	Quantity  int
	Price     int64 // cents
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// MaterialLine is the quote↔material join row.
type MaterialLine struct {
	QuoteID    string
	MaterialID string
	Quantity   int
	Price      int64 // cents
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// LinePatch carries the join-row attributes an update may change.
// Nil fields are left untouched.
type LinePatch struct {
	Quantity *int
	Price    *int64
}

// Total sums the live line amounts in cents. Soft-deleted lines do not
// count. This is a PURE function.
func Total(services []ServiceLine, materials []MaterialLine) int64 {
	var total int64
	for _, l := range services {
		if l.DeletedAt == nil {
			total += int64(l.Quantity) * l.Price
		}
	}
	for _, l := range materials {
		if l.DeletedAt == nil {
			total += int64(l.Quantity) * l.Price
		}
	}
	return total
}
