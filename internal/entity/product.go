package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is the catalog view this service works with: price to snapshot
// at order creation, plus the stock counter mutated by order transitions.
// InStock must always equal StockQuantity > 0.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID            int64           `bun:",pk,autoincrement"`
	Name          string          `bun:"name"`
	Price         decimal.Decimal `bun:"price"`
	StockQuantity int             `bun:"stock_quantity"`
	InStock       bool            `bun:"in_stock"`
	CreatedAt     time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `bun:"updated_at,nullzero"`
}
