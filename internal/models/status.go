package models

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

// nextStatus is the single-step forward transition table. Both entry states
// funnel into preparing; served and cancelled have no outgoing edge.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:   StatusPreparing,
	StatusAccepted:  StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusServed,
}

// Next returns the forward transition for the given status. The second
// return value is false when the status is terminal or unknown; callers
// must check it before mutating anything.
func Next(status OrderStatus) (OrderStatus, bool) {
	next, ok := nextStatus[status]
	return next, ok
}

// IsTerminal reports whether the status has no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == StatusServed || s == StatusCancelled
}

// IsValid reports whether the status is one of the known statuses
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusReady, StatusServed, StatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether an order in the given status may be cancelled.
// Cancellation is an externally-forced transition legal from any
// non-terminal state.
func CanCancel(status OrderStatus) bool {
	return status.IsValid() && !status.IsTerminal()
}

// CanTransition reports whether moving from one status to another is legal,
// either as the single forward step or as a cancellation.
func CanTransition(from, to OrderStatus) bool {
	if to == StatusCancelled {
		return CanCancel(from)
	}
	next, ok := Next(from)
	return ok && next == to
}
