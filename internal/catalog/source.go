// Package catalog reads listing snapshots from the external catalog.
// It holds no business logic: every Source returns the full pool of one
// category and the search engine does the rest.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"rental-search/internal/model"
)

var (
	// ErrSourceConnection means the catalog could not be reached at all.
	ErrSourceConnection = errors.New("catalog: connection failed")
	// ErrSourceTimeout means the catalog did not answer within the read timeout.
	ErrSourceTimeout = errors.New("catalog: read timed out")
	// ErrListingNotFound is returned by single-listing lookups.
	ErrListingNotFound = errors.New("catalog: listing not found")
)

// Source fetches every listing of one category. Implementations must not
// retain or mutate the returned slice after returning it.
type Source interface {
	FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error)
}

// ListingFetcher is implemented by sources that can look a single listing
// up without reading a whole pool.
type ListingFetcher interface {
	FetchListing(ctx context.Context, id string) (*model.Listing, error)
}

// FetchListing looks id up through src. Sources without a direct lookup
// are scanned category by category.
func FetchListing(ctx context.Context, src Source, id string) (*model.Listing, error) {
	if f, ok := src.(ListingFetcher); ok {
		return f.FetchListing(ctx, id)
	}
	for _, c := range model.Categories {
		pool, err := src.FetchListings(ctx, c)
		if err != nil {
			return nil, err
		}
		for i := range pool {
			if pool[i].ID == id {
				l := pool[i]
				return &l, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, category model.Category) ([]model.Listing, error)

// FetchListings calls f.
func (f SourceFunc) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	return f(ctx, category)
}

// Describe turns a fetch error into the message shown to callers. The three
// failure kinds produce distinct strings.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSourceConnection):
		return "Cannot connect to the listing source. Is it running?"
	case errors.Is(err, ErrSourceTimeout):
		return "Request timeout - the listing source took too long to respond"
	default:
		return fmt.Sprintf("Listing source error: %v", err)
	}
}

// StaticSource serves a fixed in-memory pool. Each call returns a fresh
// copy so callers can never affect later reads.
type StaticSource struct {
	listings []model.Listing
}

// NewStaticSource creates a StaticSource over listings.
func NewStaticSource(listings []model.Listing) *StaticSource {
	return &StaticSource{listings: listings}
}

// FetchListings returns the listings of the requested category.
func (s *StaticSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceTimeout, err)
	}
	return byCategory(s.listings, category), nil
}

// FetchListing looks a listing up by id.
func (s *StaticSource) FetchListing(ctx context.Context, id string) (*model.Listing, error) {
	for i := range s.listings {
		if s.listings[i].ID == id {
			l := s.listings[i]
			return &l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
}

func byCategory(all []model.Listing, category model.Category) []model.Listing {
	out := []model.Listing{}
	for _, l := range all {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out
}
