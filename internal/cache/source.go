package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"rental-search/internal/catalog"
	"rental-search/internal/model"
	"rental-search/internal/observability"
)

// PoolKey is the cache key of one category snapshot, before the store prefix.
func PoolKey(category model.Category) string {
	return "listings:" + string(category)
}

// CachedSource serves category pools from a Store and refills from the
// wrapped catalog.Source on a miss. Store failures are logged and never
// surface to the caller; catalog failures are never cached.
type CachedSource struct {
	next   catalog.Source
	store  Store
	ttl    time.Duration
	logger *observability.Logger
}

// NewCachedSource wraps next. A ttl of zero disables expiry, which only
// makes sense when catalog change events invalidate the snapshot.
func NewCachedSource(next catalog.Source, store Store, ttl time.Duration, logger *observability.Logger) *CachedSource {
	if logger == nil {
		logger = observability.Nop()
	}
	return &CachedSource{next: next, store: store, ttl: ttl, logger: logger.WithComponent("cache")}
}

// FetchListings returns the pool of one category.
func (c *CachedSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	key := PoolKey(category)
	log := c.logger.WithContext(ctx)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var listings []model.Listing
		if jerr := json.Unmarshal(raw, &listings); jerr == nil {
			log.Debug().Str("category", string(category)).Int("listings", len(listings)).Msg("pool cache hit")
			return listings, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, ErrCacheMiss):
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, reading catalog")
	}

	listings, err := c.next.FetchListings(ctx, category)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(listings); jerr == nil {
		if serr := c.store.Set(ctx, key, data, c.ttl); serr != nil {
			log.Warn().Err(serr).Str("key", key).Msg("cache write failed")
		}
	}
	return listings, nil
}

// Invalidate drops the snapshots of the given categories, or of every
// category when none is given.
func (c *CachedSource) Invalidate(ctx context.Context, categories ...model.Category) error {
	if len(categories) == 0 {
		categories = model.Categories
	}
	keys := make([]string, len(categories))
	for i, cat := range categories {
		keys[i] = PoolKey(cat)
	}
	return c.store.Delete(ctx, keys...)
}
