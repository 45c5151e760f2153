package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/meridian/internal/database"
	"github.com/Additional-Code/meridian/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/meridian/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// ErrVersionConflict is returned when an update raced with another writer
// and the optimistic version check failed.
var ErrVersionConflict = errors.New("order version conflict")

// Repository encapsulates read/write access for orders and their items.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// RunInTx executes fn inside a single database transaction. Repository
// calls made with the context passed to fn join that transaction; nested
// calls reuse the already-open one.
func (r *Repository) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := database.TxFromContext(ctx); ok {
		return fn(ctx)
	}
	return r.writer.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(database.WithTx(ctx, tx))
	})
}

// Create persists a new order together with its line items.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.String("order.number", order.Number)))
	defer span.End()

	err := r.RunInTx(ctx, func(ctx context.Context) error {
		db := database.DBFromContext(ctx, r.writer)
		if _, err := db.NewInsert().Model(order).Exec(ctx); err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		for _, item := range order.Items {
			item.OrderID = order.ID
		}
		_, err := db.NewInsert().Model(&order.Items).Exec(ctx)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByID fetches an order with its items. Reads go to the replica unless
// the context carries an open transaction.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.selectWithItems(ctx, order).Where("id = ?", id).Scan(ctx)
	return scanned(span, order, err)
}

// GetByNumber fetches an order by its human-readable order number.
func (r *Repository) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	order := new(entity.Order)
	err := r.selectWithItems(ctx, order).Where("number = ?", number).Scan(ctx)
	return scanned(span, order, err)
}

// ListByCustomer returns a customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListByCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	var orders []*entity.Order
	err := r.selectWithItems(ctx, &orders).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// Update writes the order header back, guarded by an optimistic version
// check. Returns ErrVersionConflict when a concurrent writer got there
// first; line items are immutable and never rewritten.
func (r *Repository) Update(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Update", trace.WithAttributes(attribute.Int64("order.id", order.ID)))
	defer span.End()

	db := database.DBFromContext(ctx, r.writer)
	expected := order.Version
	order.Version++

	res, err := db.NewUpdate().
		Model(order).
		WherePK().
		Where("version = ?", expected).
		Exec(ctx)
	if err != nil {
		order.Version = expected
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		order.Version = expected
		return err
	}
	if rows == 0 {
		order.Version = expected
		span.SetStatus(codes.Error, "version conflict")
		return ErrVersionConflict
	}
	return nil
}

func (r *Repository) selectWithItems(ctx context.Context, model any) *bun.SelectQuery {
	db := database.DBFromContext(ctx, r.reader)
	return db.NewSelect().
		Model(model).
		Relation("Items", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		})
}

func scanned(span trace.Span, order *entity.Order, err error) (*entity.Order, error) {
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}
