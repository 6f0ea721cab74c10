package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// Cache is a JSON key/value cache with expiry.
type Cache interface {
	// Get decodes the value at key into dest. ok is false on a miss.
	Get(ctx context.Context, key string, dest any) (ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisCache stores JSON values in Redis.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", key, err)
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.rdb.Del(ctx, full...).Err()
}

const (
	cacheKeyRevenue    = "revenue"
	cacheKeyCardTotals = "card_totals"
)

// CachedStore puts a read-through cache in front of the two whole-table
// reads (revenue and card totals). Everything else goes straight to the
// wrapped Store.
//
// A broken cache never fails a read: errors are logged and the store is
// queried instead.
type CachedStore struct {
	Store
	cache  Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

var _ Store = (*CachedStore)(nil)

func NewCachedStore(store Store, cache Cache, ttl time.Duration, logger *zerolog.Logger) *CachedStore {
	return &CachedStore{
		Store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedStore) Revenue(ctx context.Context) ([]model.Revenue, error) {
	var cached []model.Revenue
	if s.lookup(ctx, cacheKeyRevenue, &cached) {
		return cached, nil
	}

	revenue, err := s.Store.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKeyRevenue, revenue)
	return revenue, nil
}

func (s *CachedStore) CardTotals(ctx context.Context) (model.CardTotals, error) {
	var cached model.CardTotals
	if s.lookup(ctx, cacheKeyCardTotals, &cached) {
		return cached, nil
	}

	totals, err := s.Store.CardTotals(ctx)
	if err != nil {
		return model.CardTotals{}, err
	}
	s.store(ctx, cacheKeyCardTotals, totals)
	return totals, nil
}

// Warm reloads every cached value from the store.
func (s *CachedStore) Warm(ctx context.Context) error {
	revenue, err := s.Store.Revenue(ctx)
	if err != nil {
		return fmt.Errorf("warm revenue: %w", err)
	}
	if err := s.cache.Set(ctx, cacheKeyRevenue, revenue, s.ttl); err != nil {
		return fmt.Errorf("cache revenue: %w", err)
	}

	totals, err := s.Store.CardTotals(ctx)
	if err != nil {
		return fmt.Errorf("warm card totals: %w", err)
	}
	if err := s.cache.Set(ctx, cacheKeyCardTotals, totals, s.ttl); err != nil {
		return fmt.Errorf("cache card totals: %w", err)
	}
	return nil
}

// Invalidate drops every cached value.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, cacheKeyRevenue, cacheKeyCardTotals)
}

func (s *CachedStore) lookup(ctx context.Context, key string, dest any) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		return false
	}
	return ok
}

func (s *CachedStore) store(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
