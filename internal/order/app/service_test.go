package app_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	cartsqlite "github.com/jcmexdev/storefront/internal/cart/adapters/sqlite"
	cartdomain "github.com/jcmexdev/storefront/internal/cart/domain"
	ordersqlite "github.com/jcmexdev/storefront/internal/order/adapters/sqlite"
	"github.com/jcmexdev/storefront/internal/order/app"
	"github.com/jcmexdev/storefront/internal/order/domain"
	"github.com/jcmexdev/storefront/internal/order/placementlog"
	logsqlite "github.com/jcmexdev/storefront/internal/order/placementlog/sqlite"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/pkg/sqlitedb"
)

type fixture struct {
	db    *sql.DB
	svc   *app.Service
	carts *cartsqlite.CartRepo
	logs  *logsqlite.Repository
	cache *memCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlitedb.Open(context.Background(), sqlitedb.Config{Path: filepath.Join(t.TempDir(), "orders.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		db:    db,
		carts: cartsqlite.NewCartRepo(db),
		logs:  logsqlite.NewRepository(db),
		cache: newMemCache(),
	}
	f.svc = app.NewService(ordersqlite.NewOrderRepo(db), f.logs, f.cache, time.Hour)
	return f
}

func (f *fixture) addToCart(t *testing.T, username string, productID int64, price string, qty int) domain.PlaceOrderItem {
	t.Helper()
	unit := decimal.RequireFromString(price)
	total := unit.Mul(decimal.NewFromInt(int64(qty)))
	_, err := f.carts.Insert(context.Background(), cartdomain.CartItem{
		Username: username, ProductID: productID, Name: "item", UnitPrice: unit, Quantity: qty, TotalPrice: total,
	})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	return domain.PlaceOrderItem{
		Username: username, ProductID: productID, Name: "item",
		UnitPrice: unit, Quantity: qty, TotalPrice: total,
		PaymentMethod: "card", Address: "1 Main St", City: "Springfield",
	}
}

func (f *fixture) cartSize(t *testing.T, username string) int {
	t.Helper()
	items, err := f.carts.List(context.Background(), username)
	if err != nil {
		t.Fatalf("list cart: %v", err)
	}
	return len(items)
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	var n int
	if err := f.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return n
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if b, ok := value.([]byte); ok {
		m.data[key] = string(b)
	}
	return nil
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.data[key], nil
}

func (m *memCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) GenerateKey(operation, key string) string {
	return cache.GenerateKey("storefront", operation, key)
}

func (m *memCache) Close() error { return nil }

func TestPlaceOrderConsumesOnlyPlacedItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addToCart(t, "alice", 1, "10.00", 2)
	b := f.addToCart(t, "alice", 2, "3.50", 1)
	f.addToCart(t, "alice", 3, "1.00", 1)
	f.addToCart(t, "bob", 1, "10.00", 1)

	placement, err := f.svc.PlaceOrder(ctx, []domain.PlaceOrderItem{a, b}, "")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if len(placement.Orders) != 2 || placement.Replayed {
		t.Fatalf("expected 2 fresh orders, got %+v", placement)
	}
	for _, o := range placement.Orders {
		if o.BatchID != placement.BatchID || o.ID == 0 {
			t.Fatalf("order not stamped with batch: %+v", o)
		}
	}
	if got := placement.Orders[0]; got.ProductID != 1 || !got.TotalPrice.Equal(decimal.RequireFromString("20")) || got.City != "Springfield" {
		t.Fatalf("order fields not copied: %+v", got)
	}

	if n := f.cartSize(t, "alice"); n != 1 {
		t.Fatalf("expected 1 item left in alice's cart, got %d", n)
	}
	if n := f.cartSize(t, "bob"); n != 1 {
		t.Fatalf("bob's cart must be untouched, got %d", n)
	}

	history, err := f.logs.History(ctx, placement.BatchID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 || history[0].Status != placementlog.StatusStarted || history[1].Status != placementlog.StatusCompleted {
		t.Fatalf("unexpected placement log %+v", history)
	}

	orders, err := f.svc.ListOrders(ctx, "alice")
	if err != nil || len(orders) != 2 {
		t.Fatalf("expected 2 orders listed, got %d (%v)", len(orders), err)
	}
}

func TestPlaceOrderRetryCreatesNoDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	items := []domain.PlaceOrderItem{
		f.addToCart(t, "alice", 1, "10.00", 1),
		f.addToCart(t, "alice", 2, "5.00", 1),
	}

	if _, err := f.svc.PlaceOrder(ctx, items, ""); err != nil {
		t.Fatalf("first PlaceOrder failed: %v", err)
	}
	_, err := f.svc.PlaceOrder(ctx, items, "")
	if !errors.Is(err, domain.ErrCartItemMissing) {
		t.Fatalf("expected ErrCartItemMissing, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict kind, got %s", apperr.KindOf(err))
	}
	if n := f.orderCount(t); n != 2 {
		t.Fatalf("expected 2 orders in total, got %d", n)
	}
}

func TestPlaceOrderRollsBackPartialBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	present := f.addToCart(t, "alice", 1, "10.00", 1)
	missing := domain.PlaceOrderItem{Username: "alice", ProductID: 9, UnitPrice: decimal.NewFromInt(1), Quantity: 1, TotalPrice: decimal.NewFromInt(1)}

	_, err := f.svc.PlaceOrder(ctx, []domain.PlaceOrderItem{present, missing}, "")
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := f.orderCount(t); n != 0 {
		t.Fatalf("expected no orders after rollback, got %d", n)
	}
	if n := f.cartSize(t, "alice"); n != 1 {
		t.Fatalf("cart row must survive rollback, got %d rows", n)
	}
}

func TestPlaceOrderIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	items := []domain.PlaceOrderItem{f.addToCart(t, "alice", 1, "10.00", 1)}

	first, err := f.svc.PlaceOrder(ctx, items, "key-1")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	t.Run("cached replay", func(t *testing.T) {
		again, err := f.svc.PlaceOrder(ctx, items, "key-1")
		if err != nil {
			t.Fatalf("replay failed: %v", err)
		}
		if !again.Replayed || again.BatchID != first.BatchID || len(again.Orders) != 1 {
			t.Fatalf("expected replay of %s, got %+v", first.BatchID, again)
		}
	})

	t.Run("store replay when cache is down", func(t *testing.T) {
		f.cache.err = errors.New("connection refused")
		defer func() { f.cache.err = nil }()

		again, err := f.svc.PlaceOrder(ctx, items, "key-1")
		if err != nil {
			t.Fatalf("replay failed: %v", err)
		}
		if !again.Replayed || again.BatchID != first.BatchID || again.Orders[0].ID != first.Orders[0].ID {
			t.Fatalf("expected replay from store, got %+v", again)
		}
	})

	t.Run("key is scoped to the user", func(t *testing.T) {
		bob := []domain.PlaceOrderItem{f.addToCart(t, "bob", 1, "10.00", 1)}
		placed, err := f.svc.PlaceOrder(ctx, bob, "key-1")
		if err != nil {
			t.Fatalf("PlaceOrder failed: %v", err)
		}
		if placed.Replayed || placed.BatchID == first.BatchID {
			t.Fatalf("bob must not see alice's placement")
		}
	})

	if n := f.orderCount(t); n != 2 {
		t.Fatalf("expected 2 orders in total, got %d", n)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	valid := domain.PlaceOrderItem{Username: "alice", ProductID: 1, UnitPrice: decimal.NewFromInt(1), Quantity: 1, TotalPrice: decimal.NewFromInt(1)}
	with := func(mut func(*domain.PlaceOrderItem)) domain.PlaceOrderItem {
		it := valid
		mut(&it)
		return it
	}

	tests := map[string][]domain.PlaceOrderItem{
		"empty batch":      nil,
		"two users":        {valid, with(func(it *domain.PlaceOrderItem) { it.Username = "bob"; it.ProductID = 2 })},
		"duplicate items":  {valid, valid},
		"zero quantity":    {with(func(it *domain.PlaceOrderItem) { it.Quantity = 0 })},
		"negative price":   {with(func(it *domain.PlaceOrderItem) { it.UnitPrice = decimal.NewFromInt(-1) })},
		"missing username": {with(func(it *domain.PlaceOrderItem) { it.Username = "" })},
		"total too large":  {with(func(it *domain.PlaceOrderItem) { it.TotalPrice = decimal.RequireFromString("184467440737095516.17") })},
	}

	f := newFixture(t)
	for name, items := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.PlaceOrder(context.Background(), items, "")
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if n := f.orderCount(t); n != 0 {
		t.Fatalf("validation failures must not write orders, got %d", n)
	}
}

func TestPlacementHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	items := []domain.PlaceOrderItem{f.addToCart(t, "alice", 1, "10.00", 1)}

	placed, err := f.svc.PlaceOrder(ctx, items, "key-1")
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if _, err := f.svc.PlaceOrder(ctx, items, "key-1"); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	entries, err := f.svc.PlacementHistory(ctx, placed.BatchID)
	if err != nil {
		t.Fatalf("PlacementHistory failed: %v", err)
	}
	want := []placementlog.Status{placementlog.StatusStarted, placementlog.StatusCompleted, placementlog.StatusReplayed}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), entries)
	}
	for i, e := range entries {
		if e.Status != want[i] || e.Username != "alice" || e.BatchID != placed.BatchID {
			t.Fatalf("entry %d: unexpected %+v", i, e)
		}
	}

	if _, err := f.svc.PlacementHistory(ctx, "no-such-batch"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.svc.PlacementHistory(ctx, " "); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
