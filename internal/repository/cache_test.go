package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/invoice-dashboard/internal/model"
	"github.com/deppfellow/invoice-dashboard/internal/placeholder"
)

// mapCache is an in-process Cache that round-trips values through JSON
// like RedisCache does.
type mapCache struct {
	mu     sync.Mutex
	values map[string][]byte
	err    error
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return c.err
}

// countingStore counts whole-table reads on top of a MemoryStore.
type countingStore struct {
	*MemoryStore
	revenue    int
	cardTotals int
}

func (s *countingStore) Revenue(ctx context.Context) ([]model.Revenue, error) {
	s.revenue++
	return s.MemoryStore.Revenue(ctx)
}

func (s *countingStore) CardTotals(ctx context.Context) (model.CardTotals, error) {
	s.cardTotals++
	return s.MemoryStore.CardTotals(ctx)
}

func newCachedFixture() (*CachedStore, *countingStore, *mapCache) {
	logger := zerolog.Nop()
	inner := &countingStore{MemoryStore: NewMemoryStore(placeholder.Default())}
	cache := newMapCache()
	return NewCachedStore(inner, cache, time.Minute, &logger), inner, cache
}

func TestCachedStoreReadThrough(t *testing.T) {
	store, inner, _ := newCachedFixture()
	ctx := context.Background()

	first, err := store.Revenue(ctx)
	require.NoError(t, err)
	second, err := store.Revenue(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.revenue)

	totals, err := store.CardTotals(ctx)
	require.NoError(t, err)
	cached, err := store.CardTotals(ctx)
	require.NoError(t, err)

	assert.Equal(t, totals, cached)
	assert.Equal(t, 1, inner.cardTotals)
}

func TestCachedStoreFallsBackWhenCacheFails(t *testing.T) {
	store, inner, cache := newCachedFixture()
	cache.err = errors.New("redis: connection refused")
	ctx := context.Background()

	for range 2 {
		revenue, err := store.Revenue(ctx)
		require.NoError(t, err)
		assert.Len(t, revenue, 12)
	}
	assert.Equal(t, 2, inner.revenue)
}

func TestCachedStorePassesThroughOtherReads(t *testing.T) {
	store, _, cache := newCachedFixture()

	rows, err := store.FilteredInvoices(context.Background(), "evil", 10, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Empty(t, cache.values)
}

func TestCachedStoreWarmAndInvalidate(t *testing.T) {
	store, inner, cache := newCachedFixture()
	ctx := context.Background()

	require.NoError(t, store.Warm(ctx))
	assert.Len(t, cache.values, 2)
	assert.Equal(t, 1, inner.revenue)
	assert.Equal(t, 1, inner.cardTotals)

	_, err := store.CardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.cardTotals, "warmed value should be served")

	require.NoError(t, store.Invalidate(ctx))
	assert.Empty(t, cache.values)

	_, err = store.CardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.cardTotals)
}

func TestCachedStoreWarmReportsCacheFailure(t *testing.T) {
	store, _, cache := newCachedFixture()
	cache.err = errors.New("read only replica")

	assert.Error(t, store.Warm(context.Background()))
}
