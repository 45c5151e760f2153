package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Additional-Code/meridian/internal/entity"
)

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	ID                int64               `json:"id"`
	Number            string              `json:"number"`
	InvoiceNumber     string              `json:"invoice_number"`
	CustomerID        int64               `json:"customer_id"`
	Total             decimal.Decimal     `json:"total"`
	Status            string              `json:"status"`
	TrackingNumber    string              `json:"tracking_number,omitempty"`
	InventoryAdjusted bool                `json:"inventory_adjusted"`
	Items             []OrderItemResponse `json:"items"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// OrderItemResponse is one priced line of an order.
type OrderItemResponse struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// FromOrder maps an order aggregate onto its API representation.
func FromOrder(order *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return OrderResponse{
		ID:                order.ID,
		Number:            order.Number,
		InvoiceNumber:     order.InvoiceNumber,
		CustomerID:        order.CustomerID,
		Total:             order.Total,
		Status:            order.Status,
		TrackingNumber:    order.TrackingNumber,
		InventoryAdjusted: order.InventoryAdjusted,
		Items:             items,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}
