package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"smartMarket/domain"
)

type CartRepository struct {
	client *redis.Client
	ttl    time.Duration // 0 keeps carts forever
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(userKey string) string {
	// key format: "cart:user:{user_key}"
	return fmt.Sprintf("cart:user:%s", userKey)
}

func (r *CartRepository) LoadCart(ctx context.Context, userKey string) (domain.Cart, error) {
	cart := domain.Cart{UserKey: userKey, Items: []domain.CartItem{}}

	val, err := r.client.Get(ctx, cartKey(userKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart, nil
		}
		return domain.Cart{}, fmt.Errorf("failed to get cart from Redis: %w", err)
	}

	if err := json.Unmarshal(val, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	cart.UserKey = userKey

	return cart, nil
}

// SaveCart deletes the key when the cart has no items.
func (r *CartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if len(cart.Items) == 0 {
		if err := r.client.Del(ctx, cartKey(cart.UserKey)).Err(); err != nil {
			return fmt.Errorf("failed to delete cart from Redis: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.UserKey), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart in Redis: %w", err)
	}

	return nil
}
