package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Order is a customer purchase order stored in the relational database.
// Total is fixed at creation time and never recomputed afterwards.
type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID                int64           `bun:",pk,autoincrement"`
	Number            string          `bun:"number"`
	InvoiceNumber     string          `bun:"invoice_number"`
	CustomerID        int64           `bun:"customer_id"`
	Total             decimal.Decimal `bun:"total"`
	Status            string          `bun:"status"`
	TrackingNumber    string          `bun:"tracking_number,nullzero"`
	InventoryAdjusted bool            `bun:"inventory_adjusted"`
	Version           int64           `bun:"version"`
	CreatedAt         time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time       `bun:"updated_at,nullzero"`

	Items []*OrderItem `bun:"rel:has-many,join:id=order_id"`
}

// OrderItem is a single line of an order. Name and unit price are
// snapshots taken when the order was placed; later catalog changes
// never flow back into existing orders.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items"`

	ID          int64           `bun:",pk,autoincrement"`
	OrderID     int64           `bun:"order_id"`
	ProductID   int64           `bun:"product_id"`
	ProductName string          `bun:"product_name"`
	Quantity    int             `bun:"quantity"`
	UnitPrice   decimal.Decimal `bun:"unit_price"`
	Subtotal    decimal.Decimal `bun:"subtotal"`
}
