package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Additional-Code/meridian/internal/entity"
)

// ProductResponse is the catalog view exposed to callers: price and stock.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	InStock       bool            `json:"in_stock"`
}

// FromProduct maps a product row onto its API representation.
func FromProduct(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		InStock:       product.InStock,
	}
}
