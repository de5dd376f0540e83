// Package search filters, relaxes, ranks and tags listing pools, and builds
// cross-category bundles under a shared budget. Every operation is a pure
// function of one pool snapshot and the query; the Engine only adds I/O.
package search

import (
	"strings"

	"rental-search/internal/model"
)

// Constraint is one optional filter. Term is the user-supplied value, used
// in messages when the constraint drives a fallback.
type Constraint struct {
	Name  string
	Term  string
	Match func(l *model.Listing) bool
}

// Filter returns the listings satisfying every constraint. No constraints
// means the whole pool survives. The pool is not modified.
func Filter(pool []model.Listing, constraints []Constraint) []model.Listing {
	out := make([]model.Listing, 0, len(pool))
	for i := range pool {
		if matchesAll(&pool[i], constraints) {
			out = append(out, pool[i])
		}
	}
	return out
}

func matchesAll(l *model.Listing, constraints []Constraint) bool {
	for _, c := range constraints {
		if !c.Match(l) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Location matches the free-text address by substring.
func Location(loc string) Constraint {
	return Constraint{Name: "location", Term: loc, Match: func(l *model.Listing) bool {
		return containsFold(l.Address, loc)
	}}
}

// MaxPrice keeps listings priced at or under limit per day.
func MaxPrice(limit float64) Constraint {
	return Constraint{Name: "max_price_per_day", Match: func(l *model.Listing) bool {
		return l.BasePrice <= limit
	}}
}

// MinRating keeps rated listings at or above floor. Unrated listings fail.
func MinRating(floor float64) Constraint {
	return Constraint{Name: "min_rating", Match: func(l *model.Listing) bool {
		return l.Rating != nil && *l.Rating >= floor
	}}
}

// VehicleType matches the vehicle type by substring.
func VehicleType(vt string) Constraint {
	return Constraint{Name: "vehicle_type", Term: vt, Match: func(l *model.Listing) bool {
		return l.Transport != nil && containsFold(l.Transport.VehicleType, vt)
	}}
}

// Make matches the vehicle brand by substring.
func Make(brand string) Constraint {
	return Constraint{Name: "make", Term: brand, Match: func(l *model.Listing) bool {
		return l.Brand != "" && containsFold(l.Brand, brand)
	}}
}

// ModelName matches the vehicle model by substring.
func ModelName(name string) Constraint {
	return Constraint{Name: "model", Term: name, Match: func(l *model.Listing) bool {
		return l.Model != "" && containsFold(l.Model, name)
	}}
}

// MinYear keeps vehicles built in or after year. A missing year counts as 0.
func MinYear(year int) Constraint {
	return Constraint{Name: "min_year", Match: func(l *model.Listing) bool {
		return l.Year() >= year
	}}
}

// PropertyType matches the property type by substring.
func PropertyType(pt string) Constraint {
	return Constraint{Name: "property_type", Term: pt, Match: func(l *model.Listing) bool {
		return l.Accommodation != nil && containsFold(l.Accommodation.PropertyType, pt)
	}}
}

// MinCapacity keeps properties that sleep at least guests people. A missing
// capacity counts as 0.
func MinCapacity(guests int) Constraint {
	return Constraint{Name: "max_guests", Match: func(l *model.Listing) bool {
		return l.Capacity() >= guests
	}}
}

// ItemCategory matches the item category by substring.
func ItemCategory(cat string) Constraint {
	return Constraint{Name: "item_category", Term: cat, Match: func(l *model.Listing) bool {
		return l.Item != nil && containsFold(l.Item.ItemCategory, cat)
	}}
}

// Keyword matches either the title or the description by substring.
func Keyword(kw string) Constraint {
	return Constraint{Name: "keyword", Term: kw, Match: func(l *model.Listing) bool {
		return containsFold(l.Title, kw) || containsFold(l.Description, kw)
	}}
}
