package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/domain"
)

func TestCartRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	cart, err := repo.LoadCart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	first := []domain.CartItem{{ProductID: 1, Name: "iPhone 15 Pro Max", Category: "electronics", Price: 1299.99, Quantity: 1}}
	require.NoError(t, repo.SaveCart(ctx, domain.Cart{UserKey: "alice", Items: first}))

	second := append(first, domain.CartItem{ProductID: 4, Name: "Nike Air Max 270", Category: "fashion", Price: 149.99, Discount: 15, Quantity: 2})
	require.NoError(t, repo.SaveCart(ctx, domain.Cart{UserKey: "alice", Items: second}))

	cart, err = repo.LoadCart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 15.0, cart.Items[1].Discount)
	assert.Equal(t, 2, cart.Items[1].Quantity)

	var count int64
	require.NoError(t, db.Model(&domain.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.SaveCart(ctx, domain.Cart{UserKey: "alice"}))
	cart, err = repo.LoadCart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestOrdersRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrdersRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	older := domain.Order{ID: "ORD-1-AAAAAAAAA", UserKey: "alice", Status: domain.OrderStatusProcessing,
		Items: []domain.CartItem{{ProductID: 7, Quantity: 2, Price: 5}}, CreatedAt: base, EstimatedDelivery: base.AddDate(0, 0, 3)}
	newer := domain.Order{ID: "ORD-2-BBBBBBBBB", UserKey: "alice", Status: domain.OrderStatusProcessing, PaymentMethod: "card",
		Items:     []domain.CartItem{{ProductID: 1, Quantity: 1, Price: 1299.99}},
		Summary:   domain.CartSummary{Items: 1, TotalItems: 1, Subtotal: 1299.99, Tax: 104, Total: 1403.99, HasFreeShipping: true},
		CreatedAt: base.Add(time.Hour), EstimatedDelivery: base.Add(time.Hour).AddDate(0, 0, 3)}

	require.NoError(t, repo.CreateOrder(ctx, older))
	require.NoError(t, repo.CreateOrder(ctx, newer))
	require.Error(t, repo.CreateOrder(ctx, newer), "duplicate id")

	got, err := repo.GetOrder(ctx, "alice", newer.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.Summary, got.Summary)
	assert.Equal(t, "card", got.PaymentMethod)
	require.Len(t, got.Items, 1)
	assert.Equal(t, uint64(1), got.Items[0].ProductID)

	_, err = repo.GetOrder(ctx, "bob", newer.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	all, err := repo.GetAllOrders(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = repo.GetAllOrders(canceled, "alice")
	assert.ErrorIs(t, err, context.Canceled)
}
