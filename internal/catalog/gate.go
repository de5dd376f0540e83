package catalog

import (
	"context"
	"fmt"
	"math"

	"rental-search/internal/model"
	"rental-search/internal/observability"
)

// Rejection records a catalog row that was dropped before search.
type Rejection struct {
	Scope  string `json:"scope"`  // e.g. "listing:T001"
	Reason string `json:"reason"` // e.g. "basePrice negative"
}

// ValidateListing performs row-level checks. An invalid row is discarded,
// the rest of the pool continues.
func ValidateListing(l model.Listing, category model.Category) (valid bool, reason string) {
	if l.ID == "" {
		return false, "id missing"
	}
	if l.Category != category {
		return false, "type does not match " + string(category)
	}
	if !finite(l.BasePrice) {
		return false, "basePrice not finite"
	}
	if l.BasePrice < 0 {
		return false, "basePrice negative"
	}
	if l.Rating != nil && !finite(*l.Rating) {
		return false, "rating not finite"
	}
	return true, ""
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sanitize validates a pool and removes duplicate ids, keeping the first
// occurrence. The input slice is not modified.
func Sanitize(category model.Category, listings []model.Listing) ([]model.Listing, []Rejection) {
	valid := make([]model.Listing, 0, len(listings))
	rejections := []Rejection{}
	seen := make(map[string]struct{}, len(listings))

	for _, l := range listings {
		if ok, reason := ValidateListing(l, category); !ok {
			rejections = append(rejections, Rejection{Scope: "listing:" + l.ID, Reason: reason})
			continue
		}
		if _, dup := seen[l.ID]; dup {
			rejections = append(rejections, Rejection{Scope: "listing:" + l.ID, Reason: "duplicate id"})
			continue
		}
		seen[l.ID] = struct{}{}
		valid = append(valid, l)
	}
	return valid, rejections
}

// GatedSource applies Sanitize to every pool read from the wrapped source
// and logs what it dropped.
type GatedSource struct {
	next   Source
	logger *observability.Logger
}

// NewGatedSource wraps next.
func NewGatedSource(next Source, logger *observability.Logger) *GatedSource {
	if logger == nil {
		logger = observability.Nop()
	}
	return &GatedSource{next: next, logger: logger.WithComponent("catalog")}
}

// FetchListings reads from the wrapped source and drops invalid rows.
func (g *GatedSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	listings, err := g.next.FetchListings(ctx, category)
	if err != nil {
		return nil, err
	}
	valid, rejections := Sanitize(category, listings)
	for _, rej := range rejections {
		g.logger.WithContext(ctx).Warn().
			Str("scope", rej.Scope).
			Str("reason", rej.Reason).
			Msg("catalog row rejected")
	}
	return valid, nil
}

// FetchListing looks a single listing up and applies the same row checks
// as FetchListings. A rejected row is reported as not found.
func (g *GatedSource) FetchListing(ctx context.Context, id string) (*model.Listing, error) {
	l, err := FetchListing(ctx, g.next, id)
	if err != nil {
		return nil, err
	}
	if ok, reason := ValidateListing(*l, l.Category); !ok {
		g.logger.WithContext(ctx).Warn().
			Str("scope", "listing:"+id).
			Str("reason", reason).
			Msg("catalog row rejected")
		return nil, fmt.Errorf("%w: %s", ErrListingNotFound, id)
	}
	return l, nil
}
