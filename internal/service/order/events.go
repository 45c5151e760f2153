package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event names carried in the payload envelope; both event types share the
// orders topic.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// EventEnvelope is the minimal shape consumers decode first to dispatch
// on the event name.
type EventEnvelope struct {
	Event string `json:"event"`
}

// OrderCreatedEvent is emitted when a new order is persisted.
type OrderCreatedEvent struct {
	Event         string          `json:"event"`
	ID            int64           `json:"id"`
	Number        string          `json:"number"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    int64           `json:"customer_id"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderStatusChangedEvent is emitted after a lifecycle transition commits.
type OrderStatusChangedEvent struct {
	Event             string    `json:"event"`
	ID                int64     `json:"id"`
	Number            string    `json:"number"`
	PreviousStatus    string    `json:"previous_status"`
	Status            string    `json:"status"`
	TrackingNumber    string    `json:"tracking_number,omitempty"`
	InventoryAdjusted bool      `json:"inventory_adjusted"`
	UpdatedAt         time.Time `json:"updated_at"`
}
