package cache

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-search/internal/catalog"
	"rental-search/internal/model"
)

type countingSource struct {
	calls int
	src   catalog.Source
	err   error
}

func (c *countingSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.src.FetchListings(ctx, category)
}

func TestCachedSource_HitAfterMiss(t *testing.T) {
	inner := &countingSource{src: catalog.NewFixtureSource()}
	cached := NewCachedSource(inner, NewMemoryStore(), time.Minute, nil)
	ctx := context.Background()

	first, err := cached.FetchListings(ctx, model.CategoryTransport)
	require.NoError(t, err)
	second, err := cached.FetchListings(ctx, model.CategoryTransport)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Year(), second[0].Year())
	assert.Equal(t, *first[0].Rating, *second[0].Rating)

	_, err = cached.FetchListings(ctx, model.CategoryItem)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_Invalidate(t *testing.T) {
	inner := &countingSource{src: catalog.NewFixtureSource()}
	cached := NewCachedSource(inner, NewMemoryStore(), 0, nil)
	ctx := context.Background()

	_, err := cached.FetchListings(ctx, model.CategoryAccommodation)
	require.NoError(t, err)
	require.NoError(t, cached.Invalidate(ctx, model.CategoryAccommodation))
	_, err = cached.FetchListings(ctx, model.CategoryAccommodation)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	require.NoError(t, cached.Invalidate(ctx))
	_, err = cached.FetchListings(ctx, model.CategoryAccommodation)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	inner := &countingSource{err: catalog.ErrSourceConnection}
	store := NewMemoryStore()
	cached := NewCachedSource(inner, store, time.Minute, nil)

	_, err := cached.FetchListings(context.Background(), model.CategoryTransport)
	assert.ErrorIs(t, err, catalog.ErrSourceConnection)

	_, err = store.Get(context.Background(), PoolKey(model.CategoryTransport))
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestCachedSource_RedisDownFallsThrough(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	store := NewRedisStore(RedisConfig{Addr: addr, Prefix: "test:"})
	defer store.Close()

	inner := &countingSource{src: catalog.NewFixtureSource()}
	cached := NewCachedSource(inner, store, time.Minute, nil)

	got, err := cached.FetchListings(context.Background(), model.CategoryTransport)
	require.NoError(t, err)
	assert.Len(t, got, 8)
	assert.Equal(t, 1, inner.calls)
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Second))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	now = now.Add(2 * time.Second)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
