package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PREFERENCE_STORE", "")
	t.Setenv("CATALOG_SOURCE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, StoreRedis, cfg.Preferences.Store)
	assert.Equal(t, CatalogStatic, cfg.Catalog.Source)
	assert.Equal(t, 6, cfg.Recommender.DefaultCount)
	assert.Zero(t, cfg.Recommender.SearchLatency)
	assert.False(t, cfg.UsesPostgres())
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PREFERENCE_STORE", "postgres")
	t.Setenv("CATALOG_SOURCE", "remote")
	t.Setenv("CATALOG_URL", "http://catalog.local/products.json")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SEARCH_LATENCY", "800ms")
	t.Setenv("PREFERENCE_TTL", "720h")
	t.Setenv("RECOMMEND_COUNT", "12")
	t.Setenv("ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 800*time.Millisecond, cfg.Recommender.SearchLatency)
	assert.Equal(t, 720*time.Hour, cfg.Preferences.TTL)
	assert.Equal(t, 12, cfg.Recommender.DefaultCount)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowOrigins)
	assert.True(t, cfg.UsesPostgres())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"PREFERENCE_STORE": "memcached"}},
		{"unknown catalog", map[string]string{"CATALOG_SOURCE": "ftp"}},
		{"remote without url", map[string]string{"CATALOG_SOURCE": "remote", "CATALOG_URL": ""}},
		{"postgres without password", map[string]string{"PREFERENCE_STORE": "postgres", "DB_PASSWORD": ""}},
		{"bad latency", map[string]string{"SEARCH_LATENCY": "soon"}},
		{"bad count", map[string]string{"RECOMMEND_COUNT": "0"}},
		{"bad redis db", map[string]string{"REDIS_DB": "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
