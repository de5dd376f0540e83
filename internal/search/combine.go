package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rental-search/internal/catalog"
	"rental-search/internal/model"
)

const (
	// MaxBundles caps the combinations returned by one combined search.
	MaxBundles = 10
	// budgetTolerance absorbs float error so that a bundle costing exactly
	// the budget is always kept.
	budgetTolerance = 1e-9
)

// Pool is the candidate set of one category taking part in a bundle.
type Pool struct {
	Category model.Category
	Listings []model.Listing
}

type pick struct {
	idx    []int
	perDay float64
}

// Combine enumerates one listing from each pool, keeps the tuples whose
// cost over numDays fits totalBudget, and returns the MaxBundles cheapest,
// cheapest first. Ties keep enumeration order. Any empty pool yields no
// bundles; callers drop empty categories beforehand.
func Combine(pools []Pool, totalBudget float64, numDays int, year int) []model.Bundle {
	if len(pools) == 0 {
		return []model.Bundle{}
	}
	if numDays < 1 {
		numDays = 1
	}
	days := float64(numDays)

	sorted := make([][]model.Listing, len(pools))
	for i, p := range pools {
		if len(p.Listings) == 0 {
			return []model.Bundle{}
		}
		s := append([]model.Listing(nil), p.Listings...)
		OrderPrice.Sort(s)
		sorted[i] = s
	}

	// cheapest possible daily cost of the pools after position i
	minRest := make([]float64, len(sorted)+1)
	for i := len(sorted) - 1; i >= 0; i-- {
		minRest[i] = minRest[i+1] + sorted[i][0].BasePrice
	}

	var found []pick
	cur := make([]int, len(sorted))
	var walk func(depth int, perDay float64)
	walk = func(depth int, perDay float64) {
		if depth == len(sorted) {
			found = append(found, pick{idx: append([]int(nil), cur...), perDay: perDay})
			return
		}
		for j := range sorted[depth] {
			next := perDay + sorted[depth][j].BasePrice
			// pools are price sorted, so nothing later in this pool fits either
			if (next+minRest[depth+1])*days > totalBudget+budgetTolerance {
				break
			}
			cur[depth] = j
			walk(depth+1, next)
		}
	}
	walk(0, 0)

	sort.SliceStable(found, func(i, j int) bool { return found[i].perDay < found[j].perDay })
	if len(found) > MaxBundles {
		found = found[:MaxBundles]
	}

	stats := make([]poolStats, len(sorted))
	for i := range sorted {
		stats[i] = newPoolStats(sorted[i])
	}

	bundles := make([]model.Bundle, 0, len(found))
	for rank, f := range found {
		b := model.Bundle{
			Items:           make([]model.BundleItem, 0, len(f.idx)),
			TotalCostPerDay: f.perDay,
			TotalCost:       f.perDay * days,
		}
		b.RemainingBudget = totalBudget - b.TotalCost
		for i, j := range f.idx {
			l := &sorted[i][j]
			b.Items = append(b.Items, model.BundleItem{
				Category: pools[i].Category.Key(),
				Listing:  model.NewSearchResult(l, Tags(l, stats[i], year)),
			})
		}
		b.Tags = bundleTags(rank, b, totalBudget)
		bundles = append(bundles, b)
	}
	return bundles
}

func bundleTags(rank int, b model.Bundle, totalBudget float64) []string {
	tags := []string{}
	if rank == 0 {
		tags = append(tags, "Best Value")
	}
	if b.RemainingBudget >= totalBudget*0.2 {
		tags = append(tags, "Budget Saver")
	}
	if b.TotalCost <= totalBudget*0.5 {
		tags = append(tags, "Under Half Budget")
	}
	return tags
}

// SearchCombined implements search_with_combined_budget. Each requested
// category is location and type filtered but never price filtered; the
// shared budget decides which bundles survive.
func (e *Engine) SearchCombined(ctx context.Context, q model.CombinedQuery) model.CombinedResult {
	var categories []model.Category
	var plans []plan
	if q.SearchTransport {
		categories = append(categories, model.CategoryTransport)
		plans = append(plans, transportPlan(model.TransportQuery{
			Location: q.Location, VehicleType: q.VehicleType, Make: q.Make,
		}))
	}
	if q.SearchAccommodation {
		categories = append(categories, model.CategoryAccommodation)
		plans = append(plans, accommodationPlan(model.AccommodationQuery{
			Location: q.Location, PropertyType: q.PropertyType, MaxGuests: q.MaxGuests,
		}))
	}
	if q.SearchItems {
		categories = append(categories, model.CategoryItem)
		plans = append(plans, itemPlan(model.ItemQuery{
			Location: q.Location, ItemCategory: q.ItemCategory, Keyword: q.Keyword,
		}))
	}
	if len(categories) == 0 {
		return model.CombinedResult{Type: model.TypeError, Message: noCategoryMessage}
	}
	if q.TotalBudget <= 0 {
		return model.CombinedResult{Type: model.TypeError, Message: "Total budget must be greater than zero."}
	}

	days := q.NumDays
	if days < 1 {
		days = 1
	}

	ctx, start := e.begin(ctx)
	log := e.logger.WithContext(ctx)

	var pools []Pool
	var skipped []string
	var sourceErr string
	for i, read := range e.readPools(ctx, categories) {
		if read.err != nil {
			log.Warn().Err(read.err).Str("category", string(read.category)).Msg("listing source unavailable")
			if sourceErr == "" {
				sourceErr = catalog.Describe(read.err)
			}
			skipped = append(skipped, read.category.Key())
			continue
		}
		candidates := Filter(read.listings, plans[i].exact)
		if len(candidates) == 0 {
			skipped = append(skipped, read.category.Key())
			continue
		}
		pools = append(pools, Pool{Category: read.category, Listings: candidates})
	}

	res := model.CombinedResult{
		Type:         model.TypeCombinedResults,
		TotalBudget:  q.TotalBudget,
		NumDays:      days,
		Combinations: []model.Bundle{},
		Skipped:      skipped,
	}
	budget := formatAmount(q.TotalBudget)
	switch {
	case len(pools) == 0:
		res.Message = fmt.Sprintf("No listings available for the requested categories, so no combination fits a total budget of %s for %d day(s).", budget, days)
	default:
		res.Combinations = Combine(pools, q.TotalBudget, days, e.now().Year())
		if len(res.Combinations) == 0 {
			res.Message = fmt.Sprintf("No combination fits a total budget of %s for %d day(s).", budget, days)
		} else {
			res.Message = fmt.Sprintf("Found %d combination(s) within a total budget of %s for %d day(s).", len(res.Combinations), budget, days)
		}
	}
	res.Partial = len(skipped) > 0 && len(res.Combinations) > 0
	if len(skipped) > 0 {
		res.Message += " Skipped categories with no matching listings: " + strings.Join(skipped, ", ") + "."
	}
	if sourceErr != "" {
		res.Message += " " + sourceErr
	}

	e.finish(ctx, start, model.SearchPerformed{
		Operation:   "combined",
		Categories:  keys(categories),
		ResultCount: len(res.Combinations),
		SourceError: sourceErr,
	})
	return res
}

func keys(categories []model.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.Key()
	}
	return out
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
