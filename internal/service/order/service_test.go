package order

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/meridian/internal/entity"
	catalogrepo "github.com/Additional-Code/meridian/internal/repository/catalog"
	orderrepo "github.com/Additional-Code/meridian/internal/repository/order"
	"github.com/Additional-Code/meridian/pkg/errorbank"
)

// fakeCatalog is an in-memory catalog gateway with compare-and-swap stock
// writes, mirroring the SQL repository contract.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[int64]*entity.Product

	// afterGet runs after every successful GetByID, before the copy is
	// returned; tests use it to race the subsequent stock CAS.
	afterGet func(id int64)
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[int64]*entity.Product)}
}

func (f *fakeCatalog) put(p entity.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := p
	f.products[p.ID] = &stored
}

func (f *fakeCatalog) remove(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
}

func (f *fakeCatalog) stock(t *testing.T, id int64) int {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	require.True(t, ok, "product %d missing", id)
	return p.StockQuantity
}

func (f *fakeCatalog) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	f.mu.Lock()
	p, ok := f.products[id]
	if !ok {
		f.mu.Unlock()
		return nil, catalogrepo.ErrNotFound
	}
	copied := *p
	f.mu.Unlock()
	if f.afterGet != nil {
		f.afterGet(id)
	}
	return &copied, nil
}

func (f *fakeCatalog) UpdateStock(ctx context.Context, id int64, expectedStock, newStock int, inStock bool) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, catalogrepo.ErrNotFound
	}
	if p.StockQuantity != expectedStock {
		return nil, catalogrepo.ErrStockConflict
	}
	p.StockQuantity = newStock
	p.InStock = inStock
	copied := *p
	return &copied, nil
}

func (f *fakeCatalog) snapshot() map[int64]entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[int64]entity.Product, len(f.products))
	for id, p := range f.products {
		snap[id] = *p
	}
	return snap
}

func (f *fakeCatalog) restore(snap map[int64]entity.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = make(map[int64]*entity.Product, len(snap))
	for id, p := range snap {
		stored := p
		f.products[id] = &stored
	}
}

// fakeStore is an in-memory order store with an optimistic version check.
// RunInTx snapshots both the store and its paired catalog so a failed unit
// of work leaves no partial effect, matching the SQL transaction contract.
type fakeStore struct {
	mu      sync.Mutex
	orders  map[int64]*entity.Order
	nextID  int64
	catalog *fakeCatalog

	// afterGet runs after every successful GetByID; tests use it to race
	// the subsequent versioned update.
	afterGet func(id int64)
}

func newFakeStore(catalog *fakeCatalog) *fakeStore {
	return &fakeStore{orders: make(map[int64]*entity.Order), nextID: 1, catalog: catalog}
}

func copyOrder(o *entity.Order) *entity.Order {
	copied := *o
	copied.Items = make([]*entity.OrderItem, len(o.Items))
	for i, item := range o.Items {
		line := *item
		copied.Items[i] = &line
	}
	return &copied
}

func (f *fakeStore) Create(ctx context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = f.nextID
	f.nextID++
	for _, item := range order.Items {
		item.OrderID = order.ID
	}
	f.orders[order.ID] = copyOrder(order)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	f.mu.Lock()
	order, ok := f.orders[id]
	if !ok {
		f.mu.Unlock()
		return nil, orderrepo.ErrNotFound
	}
	copied := copyOrder(order)
	f.mu.Unlock()
	if f.afterGet != nil {
		f.afterGet(id)
	}
	return copied, nil
}

func (f *fakeStore) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.Number == number {
			return copyOrder(order), nil
		}
	}
	return nil, orderrepo.ErrNotFound
}

func (f *fakeStore) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for _, order := range f.orders {
		if order.CustomerID == customerID {
			out = append(out, copyOrder(order))
		}
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[order.ID]
	if !ok {
		return orderrepo.ErrNotFound
	}
	if stored.Version != order.Version {
		return orderrepo.ErrVersionConflict
	}
	order.Version++
	f.orders[order.ID] = copyOrder(order)
	return nil
}

func (f *fakeStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	ordersSnap := make(map[int64]*entity.Order, len(f.orders))
	for id, order := range f.orders {
		ordersSnap[id] = copyOrder(order)
	}
	f.mu.Unlock()
	catalogSnap := f.catalog.snapshot()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.orders = ordersSnap
		f.mu.Unlock()
		f.catalog.restore(catalogSnap)
		return err
	}
	return nil
}

type recordedEvent struct {
	key   string
	value []byte
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakePublisher) Publish(ctx context.Context, key []byte, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{key: string(key), value: append([]byte(nil), value...)})
	return nil
}

type fixture struct {
	catalog   *fakeCatalog
	store     *fakeStore
	publisher *fakePublisher
	svc       *Service
}

func newFixture() *fixture {
	catalog := newFakeCatalog()
	store := newFakeStore(catalog)
	publisher := &fakePublisher{}
	svc := New(store, catalog, Options{Publisher: publisher})
	return &fixture{catalog: catalog, store: store, publisher: publisher, svc: svc}
}

func appKind(t *testing.T, err error) errorbank.Kind {
	t.Helper()
	require.Error(t, err)
	var appErr *errorbank.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Kind()
}

func TestCreateOrder_PricesFromCatalogAndTotals(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Name: "Aurora Headphones", Price: decimal.NewFromInt(100), StockQuantity: 10, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 7, []ItemInput{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(200)), "total = %s", order.Total)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Aurora Headphones", order.Items[0].ProductName)
	assert.Equal(t, StatusPending.String(), order.Status)
	assert.False(t, order.InventoryAdjusted)
	assert.True(t, strings.HasPrefix(order.Number, "ORD-"))
	assert.True(t, strings.HasPrefix(order.InvoiceNumber, "INV-"))
	assert.NotEqual(t, order.Number, order.InvoiceNumber)

	// Creation never touches stock.
	assert.Equal(t, 10, f.catalog.stock(t, 1))

	require.Len(t, f.publisher.events, 1)
	assert.Contains(t, string(f.publisher.events[0].value), EventOrderCreated)
}

func TestCreateOrder_TotalSumsMultipleLines(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Name: "A", Price: decimal.RequireFromString("19.90"), StockQuantity: 5, InStock: true})
	f.catalog.put(entity.Product{ID: 2, Name: "B", Price: decimal.RequireFromString("5.05"), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	require.NoError(t, err)

	// 2*19.90 + 3*5.05 = 54.95
	assert.True(t, order.Total.Equal(decimal.RequireFromString("54.95")), "total = %s", order.Total)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), 1, nil)
	assert.Equal(t, errorbank.KindBadRequest, appKind(t, err))
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 99, Quantity: 1}})
	assert.Equal(t, errorbank.KindBadRequest, appKind(t, err))
}

func TestCreateOrder_NonPositiveQuantity(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})
	_, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 0}})
	assert.Equal(t, errorbank.KindBadRequest, appKind(t, err))
}

func TestCreateOrder_InvalidCustomer(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), 0, []ItemInput{{ProductID: 1, Quantity: 1}})
	assert.Equal(t, errorbank.KindBadRequest, appKind(t, err))
}

// Walks the scenario from the fulfillment lifecycle end to end: reserve
// once on paid, stay reserved through packaging/shipped, release on
// cancellation.
func TestUpdateStatus_LifecycleAdjustsInventoryOnce(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Name: "P", Price: decimal.NewFromInt(100), StockQuantity: 10, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 10, f.catalog.stock(t, 1))

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	require.NoError(t, err)
	assert.Equal(t, 8, f.catalog.stock(t, 1))
	assert.True(t, order.InventoryAdjusted)

	for _, status := range []string{"packaging", "shipped"} {
		order, err = f.svc.UpdateStatus(context.Background(), order.ID, status, "")
		require.NoError(t, err)
		assert.Equal(t, 8, f.catalog.stock(t, 1), "stock must not be decremented again on %s", status)
		assert.True(t, order.InventoryAdjusted)
	}

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "cancelled", "")
	require.NoError(t, err)
	assert.Equal(t, 10, f.catalog.stock(t, 1))
	assert.False(t, order.InventoryAdjusted)
}

func TestUpdateStatus_EveryReservingStatusDecrements(t *testing.T) {
	for _, status := range []string{"paid", "packaging", "shipped", "delivered"} {
		t.Run(status, func(t *testing.T) {
			f := newFixture()
			f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(50), StockQuantity: 5, InStock: true})

			order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 3}})
			require.NoError(t, err)

			order, err = f.svc.UpdateStatus(context.Background(), order.ID, status, "")
			require.NoError(t, err)
			assert.Equal(t, 2, f.catalog.stock(t, 1))
			assert.True(t, order.InventoryAdjusted)
		})
	}
}

func TestUpdateStatus_CancelPendingLeavesStockUntouched(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(50), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "cancelled", "")
	require.NoError(t, err)
	assert.Equal(t, 5, f.catalog.stock(t, 1))
	assert.False(t, order.InventoryAdjusted)
	assert.Equal(t, StatusCancelled.String(), order.Status)
}

func TestUpdateStatus_InvalidStatusLeavesEverythingUntouched(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(50), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "shippedd", "")
	assert.Equal(t, errorbank.KindBadRequest, appKind(t, err))

	assert.Equal(t, 5, f.catalog.stock(t, 1))
	stored, err := f.store.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending.String(), stored.Status)
	assert.False(t, stored.InventoryAdjusted)
}

func TestUpdateStatus_InvalidID(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateStatus(context.Background(), 0, "paid", "")
	assert.Equal(t, errorbank.KindBadRequest, appKind(t, err))
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateStatus(context.Background(), 42, "paid", "")
	assert.Equal(t, errorbank.KindNotFound, appKind(t, err))
}

func TestUpdateStatus_NormalizesCase(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "PAID", "")
	require.NoError(t, err)
	assert.Equal(t, "paid", order.Status)
}

func TestUpdateStatus_TrackingNumberNotClobbered(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "shipped", "TRACK-123")
	require.NoError(t, err)
	assert.Equal(t, "TRACK-123", order.TrackingNumber)

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "delivered", "")
	require.NoError(t, err)
	assert.Equal(t, "TRACK-123", order.TrackingNumber)

	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "delivered", "TRACK-456")
	require.NoError(t, err)
	assert.Equal(t, "TRACK-456", order.TrackingNumber)
}

func TestUpdateStatus_ReactivatingCancelledReservesAgain(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 6, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	require.NoError(t, err)
	assert.Equal(t, 4, f.catalog.stock(t, 1))

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "cancelled", "")
	require.NoError(t, err)
	assert.Equal(t, 6, f.catalog.stock(t, 1))

	// A cancelled order re-entering a reserving status takes a fresh
	// reservation.
	order, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	require.NoError(t, err)
	assert.Equal(t, 4, f.catalog.stock(t, 1))
	assert.True(t, order.InventoryAdjusted)
}

func TestUpdateStatus_MidLoopFailureLeavesNoPartialEffect(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Name: "A", Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})
	f.catalog.put(entity.Product{ID: 2, Name: "B", Price: decimal.NewFromInt(20), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	// The second line's product disappears before the transition.
	f.catalog.remove(2)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	assert.Equal(t, errorbank.KindUnprocessableEntity, appKind(t, err))

	// The first line's decrement must have been rolled back, and the
	// order must still be pending and unadjusted.
	assert.Equal(t, 5, f.catalog.stock(t, 1))
	stored, err := f.store.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending.String(), stored.Status)
	assert.False(t, stored.InventoryAdjusted)
}

func TestUpdateStatus_StockConflictSurfacesAsConflict(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	// Another order's commit slips in between our read and our CAS.
	raced := false
	f.catalog.afterGet = func(id int64) {
		if raced {
			return
		}
		raced = true
		f.catalog.mu.Lock()
		f.catalog.products[id].StockQuantity--
		f.catalog.mu.Unlock()
	}

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	assert.Equal(t, errorbank.KindConflict, appKind(t, err))
}

func TestUpdateStatus_VersionConflictSurfacesAsConflict(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	// Another writer bumps the row between our read and our update.
	raced := false
	f.store.afterGet = func(id int64) {
		if raced {
			return
		}
		raced = true
		f.store.mu.Lock()
		f.store.orders[id].Version++
		f.store.mu.Unlock()
	}

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	assert.Equal(t, errorbank.KindConflict, appKind(t, err))
}

func TestUpdateStatus_ConcurrentReservingTransitionsDecrementOnce(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 100, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 5}})
	require.NoError(t, err)

	statuses := []string{"paid", "packaging", "shipped", "delivered"}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			_, _ = f.svc.UpdateStatus(context.Background(), order.ID, status, "")
		}(statuses[i%len(statuses)])
	}
	wg.Wait()

	assert.Equal(t, 95, f.catalog.stock(t, 1), "stock must be decremented exactly once")
	stored, err := f.store.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.InventoryAdjusted)
}

func TestUpdateStatus_InStockFlagTracksQuantity(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 2, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	require.NoError(t, err)

	f.catalog.mu.Lock()
	product := *f.catalog.products[1]
	f.catalog.mu.Unlock()
	assert.Equal(t, 0, product.StockQuantity)
	assert.False(t, product.InStock)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "cancelled", "")
	require.NoError(t, err)

	f.catalog.mu.Lock()
	product = *f.catalog.products[1]
	f.catalog.mu.Unlock()
	assert.Equal(t, 2, product.StockQuantity)
	assert.True(t, product.InStock)
}

func TestGet_UnknownOrder(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Get(context.Background(), 404)
	assert.Equal(t, errorbank.KindNotFound, appKind(t, err))
}

func TestGetByNumber(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})

	created, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	found, err := f.svc.GetByNumber(context.Background(), created.Number)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = f.svc.GetByNumber(context.Background(), "ORD-00000000-NOPE")
	assert.Equal(t, errorbank.KindNotFound, appKind(t, err))
}

func TestListByCustomer(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 50, InStock: true})

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateOrder(context.Background(), 9, []ItemInput{{ProductID: 1, Quantity: 1}})
		require.NoError(t, err)
	}
	_, err := f.svc.CreateOrder(context.Background(), 10, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	orders, err := f.svc.ListByCustomer(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestUpdateStatus_PublishesStatusChangedEvent(t *testing.T) {
	f := newFixture()
	f.catalog.put(entity.Product{ID: 1, Price: decimal.NewFromInt(10), StockQuantity: 5, InStock: true})

	order, err := f.svc.CreateOrder(context.Background(), 1, []ItemInput{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, "paid", "")
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 2)
	assert.Contains(t, string(f.publisher.events[1].value), EventOrderStatusChanged)
	assert.Contains(t, string(f.publisher.events[1].value), `"previous_status":"pending"`)
}

// Fixed clock keeps number formats assertable.
func TestOrderNumberFormats(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	number := newOrderNumber(now)
	invoice := newInvoiceNumber(now)

	assert.True(t, strings.HasPrefix(number, "ORD-20260314-"))
	assert.Len(t, number, len("ORD-20260314-")+8)
	assert.True(t, strings.HasPrefix(invoice, "INV-20260314150926-"))
	assert.Len(t, invoice, len("INV-20260314150926-")+4)
}
