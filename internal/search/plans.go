package search

import (
	"fmt"
	"strings"

	"rental-search/internal/model"
)

// plan is everything a single-category search needs besides the pool: the
// conjunctive filter, the relaxation ladder and the wording of messages.
type plan struct {
	category    model.Category
	resultType  string
	noun        string // counted noun, e.g. "vehicle(s)"
	emptyPool   string
	exact       []Constraint
	ladder      []Constraint
	missingTerm string
}

// resolve runs filter, fallback and ranking over one pool snapshot.
func resolve(pool []model.Listing, p plan, order Order, year int) model.CategoryResult {
	res := model.CategoryResult{
		Type:     p.resultType,
		Category: p.category.Key(),
		Results:  []model.SearchResult{},
	}
	if len(pool) == 0 {
		res.Message = p.emptyPool
		return res
	}

	if candidates := Filter(pool, p.exact); len(candidates) > 0 {
		res.Results = Rank(candidates, order, year, true)
		res.Message = fmt.Sprintf("Found %d %s matching your criteria.", len(res.Results), p.noun)
		return res
	}

	if relaxed, rung, ok := Relax(pool, p.ladder); ok {
		res.Results = Rank(relaxed, order, year, false)
		res.Relaxed = true
		res.Message = fmt.Sprintf("No exact match found. Here are other %s options available:", rung.Term)
		return res
	}

	res.Message = fmt.Sprintf("No %s listings available in our database.", p.missingTerm)
	return res
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func transportPlan(q model.TransportQuery) plan {
	loc := strings.TrimSpace(q.Location)
	vt := strings.TrimSpace(q.VehicleType)
	mk := strings.TrimSpace(q.Make)
	md := strings.TrimSpace(q.Model)

	p := plan{
		category:    model.CategoryTransport,
		resultType:  model.TypeTransportResults,
		noun:        "vehicle(s)",
		emptyPool:   "No transport listings available. The backend may be unavailable or have no vehicle listings.",
		missingTerm: firstNonEmpty(vt, mk, "requested vehicle"),
	}
	if loc != "" {
		p.exact = append(p.exact, Location(loc))
	}
	if q.MaxPricePerDay != nil {
		p.exact = append(p.exact, MaxPrice(*q.MaxPricePerDay))
	}
	if vt != "" {
		p.exact = append(p.exact, VehicleType(vt))
		p.ladder = append(p.ladder, VehicleType(vt))
	}
	if mk != "" {
		p.exact = append(p.exact, Make(mk))
		p.ladder = append(p.ladder, Make(mk))
	}
	if md != "" {
		p.exact = append(p.exact, ModelName(md))
	}
	if q.MinYear > 0 {
		p.exact = append(p.exact, MinYear(q.MinYear))
	}
	if q.MinRating != nil {
		p.exact = append(p.exact, MinRating(*q.MinRating))
	}
	return p
}

func accommodationPlan(q model.AccommodationQuery) plan {
	loc := strings.TrimSpace(q.Location)
	pt := strings.TrimSpace(q.PropertyType)

	missing := pt
	if missing == "" && loc != "" {
		missing = "accommodation in " + loc
	}
	p := plan{
		category:    model.CategoryAccommodation,
		resultType:  model.TypeAccommodationResults,
		noun:        "accommodation(s)",
		emptyPool:   "No accommodation listings available. The backend may be unavailable or have no accommodation listings.",
		missingTerm: firstNonEmpty(missing, "requested accommodation"),
	}
	if loc != "" {
		p.exact = append(p.exact, Location(loc))
	}
	if q.MaxPricePerDay != nil {
		p.exact = append(p.exact, MaxPrice(*q.MaxPricePerDay))
	}
	if pt != "" {
		p.exact = append(p.exact, PropertyType(pt))
	}
	if q.MaxGuests > 0 {
		p.exact = append(p.exact, MinCapacity(q.MaxGuests))
	}
	if q.MinRating != nil {
		p.exact = append(p.exact, MinRating(*q.MinRating))
	}

	if pt != "" {
		p.ladder = append(p.ladder, PropertyType(pt))
	}
	if loc != "" {
		p.ladder = append(p.ladder, Location(loc))
	}
	return p
}

func itemPlan(q model.ItemQuery) plan {
	loc := strings.TrimSpace(q.Location)
	cat := strings.TrimSpace(q.ItemCategory)
	kw := strings.TrimSpace(q.Keyword)

	p := plan{
		category:    model.CategoryItem,
		resultType:  model.TypeItemResults,
		noun:        "item(s)",
		emptyPool:   "No item listings available. The backend may be unavailable or have no item listings.",
		missingTerm: firstNonEmpty(kw, cat, "requested item"),
	}
	if loc != "" {
		p.exact = append(p.exact, Location(loc))
	}
	if q.MaxPricePerDay != nil {
		p.exact = append(p.exact, MaxPrice(*q.MaxPricePerDay))
	}
	if cat != "" {
		p.exact = append(p.exact, ItemCategory(cat))
	}
	if kw != "" {
		p.exact = append(p.exact, Keyword(kw))
	}
	if q.MinRating != nil {
		p.exact = append(p.exact, MinRating(*q.MinRating))
	}

	if kw != "" {
		p.ladder = append(p.ladder, Keyword(kw))
	}
	if cat != "" {
		p.ladder = append(p.ladder, ItemCategory(cat))
	}
	if loc != "" {
		p.ladder = append(p.ladder, Location(loc))
	}
	return p
}
