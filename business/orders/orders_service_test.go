package orders

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/domain"
)

type memoryCarts struct {
	mu      sync.Mutex
	carts   map[string][]domain.CartItem
	saveErr error
}

func (m *memoryCarts) LoadCart(ctx context.Context, userKey string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := append([]domain.CartItem{}, m.carts[userKey]...)
	return domain.Cart{UserKey: userKey, Items: items}, nil
}

func (m *memoryCarts) SaveCart(ctx context.Context, cart domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[cart.UserKey] = append([]domain.CartItem{}, cart.Items...)
	return nil
}

type memoryOrders struct {
	mu        sync.Mutex
	orders    []domain.Order
	createErr error
}

func (m *memoryOrders) CreateOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *memoryOrders) GetOrder(ctx context.Context, userKey, orderID string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == orderID && o.UserKey == userKey {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (m *memoryOrders) GetAllOrders(ctx context.Context, userKey string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Order{}
	for _, o := range m.orders {
		if o.UserKey == userKey {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type catalog map[uint64]domain.Product

func (c catalog) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	p, ok := c[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

type recorder struct {
	mu     sync.Mutex
	events []domain.Interaction
	err    error
}

func (r *recorder) RecordInteraction(ctx context.Context, userKey string, ev domain.Interaction) (domain.PreferenceProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return domain.PreferenceProfile{}, r.err
}

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *OrdersService
	carts  *memoryCarts
	orders *memoryOrders
	rec    *recorder
}

func newFixture() fixture {
	f := fixture{
		carts:  &memoryCarts{carts: map[string][]domain.CartItem{}},
		orders: &memoryOrders{},
		rec:    &recorder{},
	}
	products := catalog{
		1: {ID: 1, Name: "iPhone 15 Pro Max", Category: "electronics", Price: 1299.99},
		4: {ID: 4, Name: "Nike Air Max 270", Category: "fashion", Price: 149.99, Discount: 15},
		7: {ID: 7, Name: "Socks", Category: "fashion", Price: 5},
	}
	f.svc = NewOrdersService(f.carts, f.orders, products, f.rec)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestOrdersService_CartOperations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cart, err := f.svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)

	cart, err = f.svc.AddItem(ctx, "alice", 4, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = f.svc.AddItem(ctx, "alice", 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.InDelta(t, 149.99*0.85*3, cart.Summary.Subtotal, eps)
	assert.True(t, cart.Summary.HasFreeShipping)

	_, err = f.svc.AddItem(ctx, "alice", 99, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	cart, err = f.svc.UpdateQuantity(ctx, "alice", 4, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.InDelta(t, StandardShipping, cart.Summary.Shipping, eps)

	_, err = f.svc.AddItem(ctx, "alice", 7, 1)
	require.NoError(t, err)
	cart, err = f.svc.RemoveItem(ctx, "alice", 7)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// other users are unaffected
	_, err = f.svc.AddItem(ctx, "bob", 1, 1)
	require.NoError(t, err)
	cart, err = f.svc.ClearCart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Len(t, f.carts.carts["bob"], 1)
}

func TestOrdersService_Checkout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "alice", 4, 1)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "alice", 7, 2)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, "alice", "card", " 1 Main St ")
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d+-[0-9A-Z]{9}$`, order.ID)
	assert.Contains(t, order.ID, "ORD-1773144000000-")
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.Equal(t, "1 Main St", order.ShippingAddress)
	assert.Equal(t, fixedNow, order.CreatedAt)
	assert.Equal(t, fixedNow.Add(72*time.Hour), order.EstimatedDelivery)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 149.99*0.85+10, order.Summary.Subtotal, eps)
	assert.True(t, order.Summary.HasFreeShipping)

	cart, err := f.svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.Len(t, f.rec.events, 2)
	for i, id := range []uint64{4, 7} {
		assert.Equal(t, domain.InteractionPurchase, f.rec.events[i].Type)
		assert.Equal(t, id, f.rec.events[i].ProductID)
	}

	stored, err := f.svc.GetOrder(ctx, "alice", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)

	_, err = f.svc.GetOrder(ctx, "bob", order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	all, err := f.svc.GetAllOrders(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrdersService_CheckoutFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Checkout(ctx, "alice", "card", "1 Main St")
		assert.ErrorIs(t, err, domain.ErrCartEmpty)
		assert.Empty(t, f.orders.orders)
	})

	t.Run("missing address", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.AddItem(ctx, "alice", 1, 1)
		require.NoError(t, err)

		_, err = f.svc.Checkout(ctx, "alice", "card", "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidOrder)
		assert.Len(t, f.carts.carts["alice"], 1)
	})

	t.Run("order store fails keeps the cart", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.AddItem(ctx, "alice", 1, 1)
		require.NoError(t, err)
		f.orders.createErr = errors.New("connection refused")

		_, err = f.svc.Checkout(ctx, "alice", "card", "1 Main St")
		assert.Error(t, err)
		assert.Len(t, f.carts.carts["alice"], 1)
		assert.Empty(t, f.rec.events)
	})

	t.Run("recorder failure is not fatal", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.AddItem(ctx, "alice", 1, 1)
		require.NoError(t, err)
		f.rec.err = errors.New("store down")

		order, err := f.svc.Checkout(ctx, "alice", "card", "1 Main St")
		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
	})

	t.Run("canceled context", func(t *testing.T) {
		f := newFixture()
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.svc.Checkout(canceled, "alice", "card", "1 Main St")
		assert.ErrorIs(t, err, context.Canceled)
		_, err = f.svc.AddItem(canceled, "alice", 1, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOrdersService_ConcurrentAddsAreNotLost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddItem(ctx, "alice", 7, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := f.svc.GetCart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 20, cart.Items[0].Quantity)
}

func TestOrdersService_Analytics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.AddItem(ctx, "alice", 7, 3)
	require.NoError(t, err)

	got, err := f.svc.Analytics(ctx, "alice")
	require.NoError(t, err)
	assert.InDelta(t, 15.0, got.TotalSpent, eps)
	assert.InDelta(t, 5.0, got.AverageItemPrice, eps)
}
