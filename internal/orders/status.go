package orders

import "fmt"

// Status is the order lifecycle state. Transitions only ever move forward:
// pending -> confirmed -> delivered. There is no path backward and no skipping.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
)

// ParseStatus validates a raw status string from a request.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusDelivered:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// CanTransitionTo reports whether next is a legal forward step from s.
// Repeating the current status is not a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusDelivered
	}
	// delivered is terminal
	return false
}
