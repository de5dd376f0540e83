package search

import (
	"strings"

	"rental-search/internal/model"
)

// poolStats are the candidate-set aggregates the relative tags compare
// against. They are computed from the pool a listing was drawn from, never
// from the unfiltered catalog.
type poolStats struct {
	minPrice  float64
	avgPrice  float64
	maxRating float64
	rated     bool
}

func newPoolStats(pool []model.Listing) poolStats {
	var s poolStats
	if len(pool) == 0 {
		return s
	}
	s.minPrice = pool[0].BasePrice
	var sum float64
	for i := range pool {
		p := pool[i].BasePrice
		sum += p
		if p < s.minPrice {
			s.minPrice = p
		}
		if r := pool[i].Rating; r != nil && (!s.rated || *r > s.maxRating) {
			s.maxRating, s.rated = *r, true
		}
	}
	s.avgPrice = sum / float64(len(pool))
	return s
}

// Tags explains why a listing was suggested. Rules are independent and
// additive and are emitted in a fixed order: price tier, rating tier,
// category descriptors, recency, value. A listing no rule fires for gets
// "Good Option".
func Tags(l *model.Listing, stats poolStats, year int) []string {
	tags := []string{}

	switch {
	case l.BasePrice <= stats.minPrice*1.01:
		tags = append(tags, "Cheapest Option")
	case l.BasePrice <= stats.minPrice*1.2:
		tags = append(tags, "Budget Friendly")
	}

	if l.Rating != nil {
		r := *l.Rating
		switch {
		case r >= 4.9:
			tags = append(tags, "Excellent Rating")
		case r >= 4.5:
			tags = append(tags, "High Rating")
		}
		if stats.rated && r >= stats.maxRating*0.99 {
			tags = append(tags, "Top Rated in Results")
		}
	}

	switch {
	case l.Transport != nil:
		tags = append(tags, vehicleTags(l)...)
	case l.Accommodation != nil:
		tags = append(tags, stayTags(l.Accommodation)...)
	case l.Item != nil:
		tags = append(tags, itemTags(l)...)
	}

	if y := l.Year(); y > 0 {
		switch {
		case y >= year-2:
			tags = append(tags, "Recent Model")
		case y >= year-5:
			tags = append(tags, "Well Maintained")
		}
	}

	if l.Rating != nil && *l.Rating >= 4.5 && l.BasePrice <= stats.avgPrice {
		tags = append(tags, "Great Value")
	}

	if len(tags) == 0 {
		tags = append(tags, "Good Option")
	}
	return tags
}

func vehicleTags(l *model.Listing) []string {
	var tags []string
	t := l.Transport

	switch strings.ToLower(strings.TrimSpace(t.VehicleType)) {
	case "car", "sedan", "hatchback":
		tags = append(tags, "Comfortable Ride")
	case "van", "suv", "mpv":
		tags = append(tags, "Spacious")
	case "motorcycle", "motorbike", "bike", "scooter":
		tags = append(tags, "Fuel Efficient")
	}

	if strings.EqualFold(strings.TrimSpace(t.Transmission), "automatic") {
		tags = append(tags, "Easy to Drive")
	}

	if t.Seats != nil {
		switch {
		case *t.Seats >= 7:
			tags = append(tags, "Great for Groups")
		case *t.Seats >= 5:
			tags = append(tags, "Family Friendly")
		}
	}
	return tags
}

func stayTags(a *model.AccommodationAttrs) []string {
	var tags []string

	switch strings.ToLower(strings.TrimSpace(a.PropertyType)) {
	case "villa", "house":
		tags = append(tags, "Spacious")
	case "apartment", "condo", "condominium", "studio":
		tags = append(tags, "City Living")
	case "room", "homestay":
		tags = append(tags, "Cozy Stay")
	}

	if a.MaxGuests != nil {
		switch {
		case *a.MaxGuests >= 6:
			tags = append(tags, "Great for Groups")
		case *a.MaxGuests >= 4:
			tags = append(tags, "Family Friendly")
		}
	}
	return tags
}

func itemTags(l *model.Listing) []string {
	var tags []string
	category := strings.ToLower(strings.TrimSpace(l.Item.ItemCategory))

	switch category {
	case "electronics":
		tags = append(tags, "Tech Gear")
	case "tools":
		tags = append(tags, "DIY Essential")
	case "furniture":
		tags = append(tags, "Home & Living")
	case "sports", "sports & outdoor", "outdoor":
		tags = append(tags, "Active Lifestyle")
	default:
		if strings.Contains(category, "camera") || containsFold(l.Title, "camera") {
			tags = append(tags, "Photography Gear")
		}
	}

	switch strings.ToLower(strings.TrimSpace(l.Item.Condition)) {
	case "new", "like new", "excellent":
		tags = append(tags, "Like New")
	case "good":
		tags = append(tags, "Good Condition")
	}

	if b := strings.TrimSpace(l.Brand); b != "" {
		tags = append(tags, b+" Brand")
	}
	return tags
}
