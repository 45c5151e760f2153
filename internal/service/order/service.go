package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Additional-Code/meridian/internal/cache"
	"github.com/Additional-Code/meridian/internal/entity"
	catalogrepo "github.com/Additional-Code/meridian/internal/repository/catalog"
	orderrepo "github.com/Additional-Code/meridian/internal/repository/order"
	"github.com/Additional-Code/meridian/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/meridian/service/order")

// Store persists and retrieves order aggregates. RunInTx must give fn a
// context whose store/catalog calls either all commit or leave no effect.
type Store interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CatalogGateway is the slice of the catalog subsystem this service
// consumes: read a product, conditionally write its stock.
type CatalogGateway interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	UpdateStock(ctx context.Context, id int64, expectedStock, newStock int, inStock bool) (*entity.Product, error)
}

// Publisher emits domain events; satisfied by messaging.Client.
type Publisher interface {
	Publish(ctx context.Context, key []byte, value []byte) error
}

// Service implements order pricing, the lifecycle state machine, and the
// inventory adjustment policy.
type Service struct {
	store     Store
	catalog   CatalogGateway
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher Publisher
	locks     *orderLocks
	now       func() time.Time
}

// Options tunes optional collaborators of the Service.
type Options struct {
	Cache     cache.Store
	CacheTTL  time.Duration
	Logger    *zap.Logger
	Publisher Publisher
	Now       func() time.Time
}

// New constructs a Service over the given store and catalog gateway.
func New(store Store, catalog CatalogGateway, opts Options) *Service {
	svc := &Service{
		store:     store,
		catalog:   catalog,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		logger:    opts.Logger,
		publisher: opts.Publisher,
		locks:     newOrderLocks(),
		now:       opts.Now,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = func() time.Time { return time.Now().UTC() }
	}
	return svc
}

// CreateOrder prices the requested items against the current catalog and
// persists a fresh pending order. No stock is reserved here; reservation
// happens on the first reserving transition.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, items []ItemInput) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(
		attribute.Int64("customer.id", customerID),
		attribute.Int("order.items", len(items)),
	))
	defer span.End()

	if customerID <= 0 {
		return nil, errorbank.BadRequest("invalid customer id")
	}
	if len(items) == 0 {
		return nil, errorbank.BadRequest("order must have at least one item")
	}

	lines, total, err := s.priceItems(ctx, items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pricing failed")
		return nil, err
	}

	now := s.now()
	order := &entity.Order{
		Number:            newOrderNumber(now),
		InvoiceNumber:     newInvoiceNumber(now),
		CustomerID:        customerID,
		Total:             total,
		Status:            StatusPending.String(),
		InventoryAdjusted: false,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
		Items:             lines,
	}

	if err := s.store.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return nil, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, order)
	s.publish(ctx, order.ID, OrderCreatedEvent{
		Event:         EventOrderCreated,
		ID:            order.ID,
		Number:        order.Number,
		InvoiceNumber: order.InvoiceNumber,
		CustomerID:    order.CustomerID,
		Total:         order.Total,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
	})

	return order, nil
}

// UpdateStatus validates and applies a lifecycle transition, driving the
// inventory adjustment policy: entering a reserving status decrements
// stock exactly once per order, and cancellation restores it when (and
// only when) it was previously committed.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string, trackingNumber string) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.String("order.status", status),
	))
	defer span.End()

	if orderID <= 0 {
		return nil, errorbank.BadRequest("invalid order id")
	}
	target, err := ParseStatus(status)
	if err != nil {
		return nil, errorbank.BadRequest("invalid order status", errorbank.WithCause(err))
	}

	release := s.locks.acquire(orderID)
	defer release()

	var order *entity.Order
	var previous string
	txErr := s.store.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.store.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		previous = order.Status

		if target.Reserving() && !order.InventoryAdjusted {
			if err := s.commitStock(ctx, order.Items); err != nil {
				return err
			}
			order.InventoryAdjusted = true
		}

		if target.Releasing() && order.InventoryAdjusted {
			if err := s.restoreStock(ctx, order.Items); err != nil {
				return err
			}
			order.InventoryAdjusted = false
		}

		order.Status = target.String()
		order.UpdatedAt = s.now()
		if trackingNumber != "" {
			order.TrackingNumber = trackingNumber
		}

		return s.store.Update(ctx, order)
	})
	if txErr != nil {
		span.RecordError(txErr)
		span.SetStatus(codes.Error, "transition failed")
		return nil, s.transitionError(txErr)
	}

	s.storeInCache(ctx, order)
	s.publish(ctx, order.ID, OrderStatusChangedEvent{
		Event:             EventOrderStatusChanged,
		ID:                order.ID,
		Number:            order.Number,
		PreviousStatus:    previous,
		Status:            order.Status,
		TrackingNumber:    order.TrackingNumber,
		InventoryAdjusted: order.InventoryAdjusted,
		UpdatedAt:         order.UpdatedAt,
	})

	return order, nil
}

// Get retrieves an order by id, consulting the cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if id <= 0 {
		return nil, errorbank.BadRequest("invalid order id")
	}

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("orders cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, order)
	return order, nil
}

// GetByNumber retrieves an order by its human-readable order number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.GetByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	if number == "" {
		return nil, errorbank.BadRequest("order number is required")
	}

	order, err := s.store.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, orderrepo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.ListByCustomer", trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	if customerID <= 0 {
		return nil, errorbank.BadRequest("invalid customer id")
	}

	orders, err := s.store.ListByCustomer(ctx, customerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store error")
		return nil, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}
	return orders, nil
}

// commitStock decrements stock for every line item. The caller's
// transaction scope makes the loop all-or-nothing.
func (s *Service) commitStock(ctx context.Context, items []*entity.OrderItem) error {
	for _, item := range items {
		if err := s.adjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// restoreStock returns previously committed stock for every line item.
func (s *Service) restoreStock(ctx context.Context, items []*entity.OrderItem) error {
	for _, item := range items {
		if err := s.adjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) adjustStock(ctx context.Context, productID int64, delta int) error {
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	newStock := product.StockQuantity + delta
	_, err = s.catalog.UpdateStock(ctx, product.ID, product.StockQuantity, newStock, newStock > 0)
	return err
}

// transitionError maps storage and catalog failures onto the caller-facing
// taxonomy. Conflicts tell the caller to retry the whole transition from a
// fresh read; the service itself never retries.
func (s *Service) transitionError(err error) error {
	var appErr *errorbank.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, orderrepo.ErrNotFound):
		return errorbank.NotFound("order not found")
	case errors.Is(err, orderrepo.ErrVersionConflict):
		return errorbank.Conflict("order was modified concurrently", errorbank.WithCause(err))
	case errors.Is(err, catalogrepo.ErrStockConflict):
		return errorbank.Conflict("product stock changed concurrently", errorbank.WithCause(err))
	case errors.Is(err, catalogrepo.ErrNotFound):
		return errorbank.Unprocessable("order references a missing product", errorbank.WithCause(err))
	default:
		return errorbank.Internal("failed to update order status", errorbank.WithCause(err))
	}
}

func isCatalogNotFound(err error) bool {
	return errors.Is(err, catalogrepo.ErrNotFound)
}

func (s *Service) publish(ctx context.Context, orderID int64, event any) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order event", zap.Error(err))
		return
	}
	key := []byte(fmt.Sprintf("order-%d", orderID))
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.logger.Error("publish order event", zap.Int64("id", orderID), zap.Error(err))
	}
}

func (s *Service) cacheKey(id int64) string {
	return fmt.Sprintf("orders:%d", id)
}

func (s *Service) getFromCache(ctx context.Context, id int64) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) storeInCache(ctx context.Context, order *entity.Order) {
	if s.cache == nil || order == nil {
		return
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		s.logger.Warn("orders cache encode failed", zap.Int64("id", order.ID), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(order.ID), bytes, s.cacheTTL); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("id", order.ID), zap.Error(err))
	}
}
