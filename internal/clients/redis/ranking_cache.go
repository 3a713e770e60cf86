package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

const (
	DefaultKeyPrefix = "kisansaathi:ranking:"
	DefaultTTL       = 6 * time.Hour
)

type Config struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// RankingCache stores raw ranker replies keyed by a request fingerprint.
type RankingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

type rankingCache struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewRankingCache connects to Redis and pings it once.
func NewRankingCache(log *logger.Logger, cfg Config) (RankingCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRankingCache(log, rdb, cfg), nil
}

func newRankingCache(log *logger.Logger, rdb goredis.UniversalClient, cfg Config) *rankingCache {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &rankingCache{
		log:    log.With("service", "RedisRankingCache"),
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
	}
}

// Get reports ok=false on a miss.
func (c *rankingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return raw, true, nil
}

func (c *rankingCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *rankingCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *rankingCache) Close() error {
	return c.rdb.Close()
}
