package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartMarket/pkg/config"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(config.RedisConfig{RedisHost: mr.Host(), RedisPort: mr.Port()})
	require.NoError(t, err)
	assert.NoError(t, CloseRedisClient(client))
	assert.NoError(t, CloseRedisClient(nil))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisClient(config.RedisConfig{RedisHost: host, RedisPort: port})
	assert.Error(t, err)
}
