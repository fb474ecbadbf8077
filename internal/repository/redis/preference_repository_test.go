package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestPreferenceRepository_RoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPreferenceRepository(client, 0)
	ctx := context.Background()

	got, err := repo.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)

	profile := domain.PreferenceProfile{
		Categories:          []string{"fashion"},
		PriceRange:          domain.PriceRange{Min: 0, Max: 5000},
		Brands:              []string{},
		ViewedProductIDs:    []uint64{4},
		PurchasedProductIDs: []uint64{},
	}
	require.NoError(t, repo.SaveProfile(ctx, "alice", profile))
	assert.True(t, mr.Exists("preferences:user:alice"))

	got, err = repo.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile, *got)
}

func TestPreferenceRepository_StoredShape(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPreferenceRepository(client, 0)

	require.NoError(t, repo.SaveProfile(context.Background(), "alice", domain.PreferenceProfile{
		Categories:       []string{"home"},
		PriceRange:       domain.PriceRange{Max: 5000},
		ViewedProductIDs: []uint64{6},
	}))

	raw, err := mr.Get("preferences:user:alice")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"categories":["home"],"price_range":{"min":0,"max":5000},"brands":null,"viewed_products":[6],"purchased_products":null}`,
		raw,
	)
}

func TestPreferenceRepository_TTL(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPreferenceRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.SaveProfile(ctx, "alice", domain.PreferenceProfile{}))
	assert.Equal(t, time.Hour, mr.TTL("preferences:user:alice"))

	mr.FastForward(2 * time.Hour)

	got, err := repo.LoadProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreferenceRepository_Malformed(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPreferenceRepository(client, 0)

	require.NoError(t, mr.Set("preferences:user:bob", "not-json"))

	got, err := repo.LoadProfile(context.Background(), "bob")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrMalformedProfile)
}

func TestPreferenceRepository_Unavailable(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewPreferenceRepository(client, 0)
	mr.Close()

	_, err := repo.LoadProfile(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMalformedProfile)

	assert.Error(t, repo.SaveProfile(context.Background(), "alice", domain.PreferenceProfile{}))
}
