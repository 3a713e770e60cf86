package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

func TestNewRankingCacheRequiresAddr(t *testing.T) {
	_, err := NewRankingCache(logger.Nop(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_ADDR")

	_, err = NewRankingCache(nil, Config{Addr: "localhost:6379"})
	require.Error(t, err)
}

func TestRankingCacheDefaults(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	c := newRankingCache(logger.Nop(), rdb, Config{})
	assert.Equal(t, DefaultTTL, c.ttl)
	assert.Equal(t, DefaultKeyPrefix, c.prefix)

	c = newRankingCache(logger.Nop(), rdb, Config{TTL: time.Minute, Prefix: "t:"})
	assert.Equal(t, time.Minute, c.ttl)
	assert.Equal(t, "t:", c.prefix)
}

func TestRankingCacheUnreachableServerReturnsError(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newRankingCache(logger.Nop(), rdb, Config{})
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, ok, err := c.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", []byte("v")))
}
