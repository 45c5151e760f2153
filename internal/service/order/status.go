package order

import (
	"fmt"
	"strings"
)

// Status is an order lifecycle state. The stored value is always
// lowercase; parsing is case-insensitive.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusPackaging Status = "packaging"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid lifecycle state.
var Statuses = []Status{
	StatusPending,
	StatusPaid,
	StatusPackaging,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus normalizes and validates a status string. There is no
// adjacency graph: any valid state may transition to any other; only the
// inventory side effect depends on the classification below.
func ParseStatus(raw string) (Status, error) {
	normalized := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range Statuses {
		if normalized == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", raw)
}

// Reserving reports whether entering this state commits inventory:
// stock must have been decremented for the order by the time it holds.
func (s Status) Reserving() bool {
	switch s {
	case StatusPaid, StatusPackaging, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Releasing reports whether entering this state returns previously
// committed inventory.
func (s Status) Releasing() bool {
	return s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}
