package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/meridian/internal/database"
	"github.com/Additional-Code/meridian/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/meridian/repository/catalog")

// ErrNotFound is returned when a product is missing.
var ErrNotFound = errors.New("product not found")

// ErrStockConflict is returned when a conditional stock write observed a
// counter value other than the one the caller read.
var ErrStockConflict = errors.New("product stock conflict")

// Repository is the catalog boundary this service consumes: read a
// product, conditionally write its stock counter.
type Repository struct {
	conns *database.Connections
}

// NewRepository wires a catalog repository over the configured connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{conns: conns}
}

// GetByID fetches a product by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.GetByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	db := database.DBFromContext(ctx, r.conns.Reader)
	product := new(entity.Product)
	err := db.NewSelect().Model(product).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return product, nil
}

// UpdateStock writes a product's stock counter and in-stock flag as a
// compare-and-swap against the previously read counter, so concurrent
// orders touching the same product cannot lose updates.
func (r *Repository) UpdateStock(ctx context.Context, id int64, expectedStock, newStock int, inStock bool) (*entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.UpdateStock", trace.WithAttributes(
		attribute.Int64("product.id", id),
		attribute.Int("product.stock", newStock),
	))
	defer span.End()

	db := database.DBFromContext(ctx, r.conns.Writer)
	res, err := db.NewUpdate().
		Model((*entity.Product)(nil)).
		Set("stock_quantity = ?", newStock).
		Set("in_stock = ?", inStock).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Where("stock_quantity = ?", expectedStock).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Distinguish a vanished product from a raced counter.
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrNotFound) {
			span.SetStatus(codes.Error, "not found")
			return nil, ErrNotFound
		}
		span.SetStatus(codes.Error, "stock conflict")
		return nil, ErrStockConflict
	}
	return r.GetByID(ctx, id)
}
