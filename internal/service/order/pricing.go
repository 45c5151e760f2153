package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Additional-Code/meridian/internal/entity"
	"github.com/Additional-Code/meridian/pkg/errorbank"
)

// ItemInput is a requested order line: a product reference plus quantity.
// Any price the caller knows about is ignored; pricing always comes from
// the catalog at creation time.
type ItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// priceItems resolves every requested item against the catalog, snapshots
// name and unit price, and returns the priced lines with their sum.
func (s *Service) priceItems(ctx context.Context, items []ItemInput) ([]*entity.OrderItem, decimal.Decimal, error) {
	lines := make([]*entity.OrderItem, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, errorbank.BadRequest(
				"item quantity must be positive",
				errorbank.WithDetail("product_id", item.ProductID),
			)
		}

		product, err := s.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if isCatalogNotFound(err) {
				return nil, decimal.Zero, errorbank.BadRequest(
					fmt.Sprintf("product %d not found", item.ProductID),
					errorbank.WithDetail("product_id", item.ProductID),
				)
			}
			return nil, decimal.Zero, errorbank.Internal("failed to load product", errorbank.WithCause(err))
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, &entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	return lines, total, nil
}

// newOrderNumber yields ORD-YYYYMMDD-XXXXXXXX.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), uuidFragment(8))
}

// newInvoiceNumber yields INV-YYYYMMDDHHMMSS-XXXX.
func newInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102150405"), uuidFragment(4))
}

func uuidFragment(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:n])
}
