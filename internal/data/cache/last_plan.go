package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/studyguide-backend/internal/domain"
	"github.com/yungbote/studyguide-backend/internal/platform/envutil"
	"github.com/yungbote/studyguide-backend/internal/platform/logger"
)

// LastPlanCache keeps the most recent accepted plan per client.
type LastPlanCache interface {
	Get(ctx context.Context, clientKey string) (*types.LastPlan, error)
	Put(ctx context.Context, clientKey string, entry types.LastPlan) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		Addr:     envutil.String("REDIS_ADDR", ""),
		Password: envutil.String("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
		Prefix:   envutil.String("REDIS_KEY_PREFIX", "studyguide"),
		TTL:      envutil.Duration("LAST_PLAN_TTL", 30*24*time.Hour),
	}
}

type redisLastPlanCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewLastPlanCache connects to redis. With no address configured, or when
// redis does not answer a ping, it returns a cache that stores nothing.
func NewLastPlanCache(ctx context.Context, log *logger.Logger, cfg Config) (LastPlanCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		log.Info("REDIS_ADDR not set; last-plan cache disabled")
		return Disabled{}, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Warn("Redis unreachable; last-plan cache disabled", "addr", cfg.Addr, "error", err)
		return Disabled{}, nil
	}

	return NewRedisLastPlanCache(rdb, log, cfg.Prefix, cfg.TTL), nil
}

func NewRedisLastPlanCache(rdb *goredis.Client, log *logger.Logger, prefix string, ttl time.Duration) LastPlanCache {
	if prefix == "" {
		prefix = "studyguide"
	}
	return &redisLastPlanCache{
		log:    log.With("service", "LastPlanCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *redisLastPlanCache) key(clientKey string) string {
	return c.prefix + ":last_plan:" + clientKey
}

// Get returns nil without error on a miss.
func (c *redisLastPlanCache) Get(ctx context.Context, clientKey string) (*types.LastPlan, error) {
	raw, err := c.rdb.Get(ctx, c.key(clientKey)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry types.LastPlan
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.log.Warn("Dropping unreadable cache entry", "client_key", clientKey, "error", err)
		_ = c.rdb.Del(ctx, c.key(clientKey)).Err()
		return nil, nil
	}
	return &entry, nil
}

func (c *redisLastPlanCache) Put(ctx context.Context, clientKey string, entry types.LastPlan) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(clientKey), raw, c.ttl).Err()
}

func (c *redisLastPlanCache) Close() error { return c.rdb.Close() }

// Disabled is the cache used when redis is not configured.
type Disabled struct{}

func (Disabled) Get(context.Context, string) (*types.LastPlan, error) { return nil, nil }
func (Disabled) Put(context.Context, string, types.LastPlan) error    { return nil }
func (Disabled) Close() error                                          { return nil }
