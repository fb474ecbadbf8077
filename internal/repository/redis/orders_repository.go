package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"smartMarket/domain"
)

type OrdersRepository struct {
	client *redis.Client
}

func NewOrdersRepository(client *redis.Client) *OrdersRepository {
	return &OrdersRepository{client: client}
}

func ordersKey(userKey string) string {
	// key format: "orders:user:{user_key}", one hash field per order id
	return fmt.Sprintf("orders:user:%s", userKey)
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.client.HSet(ctx, ordersKey(order.UserKey), order.ID, data).Err(); err != nil {
		return fmt.Errorf("failed to store order in Redis: %w", err)
	}

	return nil
}

func (r *OrdersRepository) GetOrder(ctx context.Context, userKey, orderID string) (domain.Order, error) {
	val, err := r.client.HGet(ctx, ordersKey(userKey), orderID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to get order from Redis: %w", err)
	}

	return decodeOrder(userKey, val)
}

func (r *OrdersRepository) GetAllOrders(ctx context.Context, userKey string) ([]domain.Order, error) {
	vals, err := r.client.HGetAll(ctx, ordersKey(userKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get orders from Redis: %w", err)
	}

	orders := make([]domain.Order, 0, len(vals))
	for _, val := range vals {
		order, err := decodeOrder(userKey, []byte(val))
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

func decodeOrder(userKey string, data []byte) (domain.Order, error) {
	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return domain.Order{}, fmt.Errorf("failed to decode order: %w", err)
	}
	// user_key is not part of the JSON form
	order.UserKey = userKey
	return order, nil
}
