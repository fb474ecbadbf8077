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

type PreferenceRepository struct {
	client *redis.Client
	ttl    time.Duration // 0 keeps profiles forever
}

func NewPreferenceRepository(client *redis.Client, ttl time.Duration) *PreferenceRepository {
	return &PreferenceRepository{
		client: client,
		ttl:    ttl,
	}
}

func preferenceKey(userKey string) string {
	// key format: "preferences:user:{user_key}"
	return fmt.Sprintf("preferences:user:%s", userKey)
}

// LoadProfile returns (nil, nil) when no profile is stored for userKey.
func (r *PreferenceRepository) LoadProfile(ctx context.Context, userKey string) (*domain.PreferenceProfile, error) {
	val, err := r.client.Get(ctx, preferenceKey(userKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences from Redis: %w", err)
	}

	var profile domain.PreferenceProfile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedProfile, err)
	}

	return &profile, nil
}

func (r *PreferenceRepository) SaveProfile(ctx context.Context, userKey string, profile domain.PreferenceProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := r.client.Set(ctx, preferenceKey(userKey), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store preferences in Redis: %w", err)
	}

	return nil
}
