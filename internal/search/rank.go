package search

import (
	"fmt"
	"sort"
	"strings"

	"rental-search/internal/model"
)

// Order is the ranking rule of a deployment. One order applies to every
// result set served from the same data source.
type Order string

const (
	// OrderPrice ranks cheapest first.
	OrderPrice Order = "price"
	// OrderRating ranks best rated first, cheaper first on ties. Unrated
	// listings sort after rated ones.
	OrderRating Order = "rating"
)

// TopResultTag marks the first listing of an exact match.
const TopResultTag = "Most Suitable"

// ParseOrder accepts "price" or "rating". An empty string means price.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderPrice:
		return OrderPrice, nil
	case OrderRating:
		return OrderRating, nil
	}
	return "", fmt.Errorf("unknown ranking order %q", s)
}

// Sort orders listings in place. The sort is stable so equal keys keep
// their catalog order.
func (o Order) Sort(listings []model.Listing) {
	if o == OrderRating {
		sort.SliceStable(listings, func(i, j int) bool {
			ri, rj := ratingKey(&listings[i]), ratingKey(&listings[j])
			if ri != rj {
				return ri > rj
			}
			return listings[i].BasePrice < listings[j].BasePrice
		})
		return
	}
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].BasePrice < listings[j].BasePrice
	})
}

func ratingKey(l *model.Listing) float64 {
	if l.Rating == nil {
		return -1
	}
	return *l.Rating
}

// Rank sorts a copy of candidates, tags every listing against the
// candidate set and, for exact matches, prepends TopResultTag to the first
// result. year is the current calendar year used by the recency tags.
func Rank(candidates []model.Listing, order Order, year int, exact bool) []model.SearchResult {
	sorted := append([]model.Listing(nil), candidates...)
	order.Sort(sorted)

	stats := newPoolStats(sorted)
	results := make([]model.SearchResult, 0, len(sorted))
	for i := range sorted {
		tags := Tags(&sorted[i], stats, year)
		if i == 0 && exact {
			tags = append([]string{TopResultTag}, tags...)
		}
		results = append(results, model.NewSearchResult(&sorted[i], tags))
	}
	return results
}
