package search

import "rental-search/internal/model"

// Relax re-filters the full pool with one constraint at a time, most
// specific first, and returns the first non-empty set together with the
// constraint that produced it. ok is false when every rung comes back
// empty or the ladder is empty; the caller must then report "no listings"
// rather than fall back to the unrelated pool.
func Relax(pool []model.Listing, ladder []Constraint) (relaxed []model.Listing, rung Constraint, ok bool) {
	for _, c := range ladder {
		if got := Filter(pool, []Constraint{c}); len(got) > 0 {
			return got, c, true
		}
	}
	return nil, Constraint{}, false
}
