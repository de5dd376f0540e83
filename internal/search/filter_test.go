package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-search/internal/model"
)

func vehicle(id string, price float64, mutate ...func(*model.Listing)) model.Listing {
	l := model.Listing{
		ID:        id,
		Category:  model.CategoryTransport,
		Title:     "Toyota Camry",
		BasePrice: price,
		Address:   "Jalan Ampang, Kuala Lumpur",
		Status:    "AVAILABLE",
		Rating:    model.FloatPtr(4.7),
		Brand:     "Toyota",
		Model:     "Camry",
		Transport: &model.TransportAttrs{VehicleType: "car", Year: model.IntPtr(2020), Seats: model.IntPtr(5)},
	}
	for _, m := range mutate {
		m(&l)
	}
	return l
}

func TestFilter_Conjunction(t *testing.T) {
	q := model.TransportQuery{
		Location:       "kuala lumpur",
		MaxPricePerDay: model.FloatPtr(100),
		VehicleType:    "CAR",
		Make:           "toyota",
		Model:          "camry",
		MinYear:        2019,
		MinRating:      model.FloatPtr(4.5),
	}
	constraints := transportPlan(q).exact
	require.Len(t, constraints, 7)

	tests := []struct {
		name    string
		listing model.Listing
		keep    bool
	}{
		{"satisfies all", vehicle("ok", 90), true},
		{"wrong location", vehicle("loc", 90, func(l *model.Listing) { l.Address = "Penang" }), false},
		{"too expensive", vehicle("price", 100.01), false},
		{"wrong type", vehicle("type", 90, func(l *model.Listing) { l.Transport.VehicleType = "van" }), false},
		{"wrong make", vehicle("make", 90, func(l *model.Listing) { l.Brand = "Honda" }), false},
		{"wrong model", vehicle("model", 90, func(l *model.Listing) { l.Model = "Vios" }), false},
		{"too old", vehicle("year", 90, func(l *model.Listing) { l.Transport.Year = model.IntPtr(2018) }), false},
		{"missing year", vehicle("noyear", 90, func(l *model.Listing) { l.Transport.Year = nil }), false},
		{"rating too low", vehicle("rating", 90, func(l *model.Listing) { l.Rating = model.FloatPtr(4.4) }), false},
		{"unrated", vehicle("unrated", 90, func(l *model.Listing) { l.Rating = nil }), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter([]model.Listing{tt.listing}, constraints)
			if tt.keep {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFilter_NoConstraintsKeepsPool(t *testing.T) {
	pool := []model.Listing{vehicle("a", 1), vehicle("b", 2)}
	assert.Len(t, Filter(pool, nil), 2)
	assert.Empty(t, Filter(nil, []Constraint{MaxPrice(10)}))
}

func TestFilter_PriceBoundaryInclusive(t *testing.T) {
	pool := []model.Listing{vehicle("at", 100.0), vehicle("over", 100.5), vehicle("under", 99)}
	got := Filter(pool, []Constraint{MaxPrice(100)})
	require.Len(t, got, 2)
	assert.Equal(t, "at", got[0].ID)
	assert.Equal(t, "under", got[1].ID)
}

func TestFilter_Accommodation(t *testing.T) {
	stay := func(id, pt string, guests *int) model.Listing {
		return model.Listing{
			ID: id, Category: model.CategoryAccommodation, BasePrice: 100, Address: "Penang",
			Accommodation: &model.AccommodationAttrs{PropertyType: pt, MaxGuests: guests},
		}
	}
	pool := []model.Listing{
		stay("six", "House", model.IntPtr(6)),
		stay("four", "Apartment", model.IntPtr(4)),
		stay("unknown", "House", nil),
	}

	got := Filter(pool, accommodationPlan(model.AccommodationQuery{MaxGuests: 5}).exact)
	require.Len(t, got, 1)
	assert.Equal(t, "six", got[0].ID)

	got = Filter(pool, accommodationPlan(model.AccommodationQuery{PropertyType: "house"}).exact)
	assert.Len(t, got, 2)
}

func TestFilter_ItemKeyword(t *testing.T) {
	item := func(id, title, desc string) model.Listing {
		return model.Listing{
			ID: id, Category: model.CategoryItem, Title: title, Description: desc,
			Item: &model.ItemAttrs{ItemCategory: "Electronics"},
		}
	}
	pool := []model.Listing{
		item("title", "Canon DSLR Camera", "for events"),
		item("desc", "Sony A7", "mirrorless CAMERA body"),
		item("none", "MacBook Pro", "laptop"),
	}
	got := Filter(pool, []Constraint{Keyword("camera")})
	require.Len(t, got, 2)
	assert.Equal(t, "title", got[0].ID)
	assert.Equal(t, "desc", got[1].ID)
}

func TestRelax_Precedence(t *testing.T) {
	pool := []model.Listing{
		vehicle("car", 80),
		vehicle("honda-bike", 30, func(l *model.Listing) {
			l.Brand = "Honda"
			l.Transport.VehicleType = "motorcycle"
		}),
	}

	got, rung, ok := Relax(pool, []Constraint{VehicleType("van"), Make("honda")})
	require.True(t, ok)
	assert.Equal(t, "make", rung.Name)
	require.Len(t, got, 1)
	assert.Equal(t, "honda-bike", got[0].ID)

	got, rung, ok = Relax(pool, []Constraint{VehicleType("car"), Make("honda")})
	require.True(t, ok)
	assert.Equal(t, "car", rung.Term)
	assert.Len(t, got, 1)

	_, _, ok = Relax(pool, nil)
	assert.False(t, ok)
	_, _, ok = Relax(pool, []Constraint{VehicleType("helicopter")})
	assert.False(t, ok)
}
