package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-search/internal/model"
)

func TestDecodeListing_LenientFields(t *testing.T) {
	raw := []byte(`{
		"listingId": 42,
		"type": "transport",
		"title": "Toyota Camry 2018",
		"basePrice": "80.00",
		"location": "Kuala Lumpur",
		"images": ["https://a/1.jpg", {"url": "https://a/2.jpg"}, {"url": ""}],
		"rating": "4.7",
		"make": "Toyota",
		"model": "Camry",
		"vehicleType": "car",
		"year": "2018",
		"seats": 5
	}`)

	l, err := DecodeListing(raw)
	require.NoError(t, err)

	assert.Equal(t, "42", l.ID)
	assert.Equal(t, model.CategoryTransport, l.Category)
	assert.Equal(t, 80.0, l.BasePrice)
	assert.Equal(t, "Kuala Lumpur", l.Address)
	assert.Equal(t, []string{"https://a/1.jpg", "https://a/2.jpg"}, l.Images)
	require.NotNil(t, l.Rating)
	assert.Equal(t, 4.7, *l.Rating)
	assert.Equal(t, "Toyota", l.Brand)
	assert.Equal(t, "car", l.VehicleType())
	assert.Equal(t, 2018, l.Year())
	require.NotNil(t, l.Transport.Seats)
	assert.Equal(t, 5, *l.Transport.Seats)
	assert.Nil(t, l.Accommodation)
	assert.Nil(t, l.Item)
}

func TestDecodeListing_CategorySpecificAliases(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, l model.Listing)
	}{
		{
			name: "numGuests fills capacity",
			raw:  `{"id":"A1","type":"ACCOMMODATION","basePrice":150,"propertyType":"Apartment","numGuests":4}`,
			check: func(t *testing.T, l model.Listing) {
				assert.Equal(t, 4, l.Capacity())
				assert.Equal(t, "Apartment", l.PropertyType())
			},
		},
		{
			name: "maxGuests wins over numGuests",
			raw:  `{"id":"A2","type":"ACCOMMODATION","basePrice":150,"maxGuests":6,"numGuests":2}`,
			check: func(t *testing.T, l model.Listing) {
				assert.Equal(t, 6, l.Capacity())
			},
		},
		{
			name: "itemCategory alias",
			raw:  `{"id":"I1","type":"ITEM","basePrice":20,"itemCategory":"Tools","condition":"Good"}`,
			check: func(t *testing.T, l model.Listing) {
				assert.Equal(t, "Tools", l.ItemCategory())
				assert.Equal(t, "Good", l.Item.Condition)
			},
		},
		{
			name: "missing rating stays nil",
			raw:  `{"id":"I2","type":"ITEM","basePrice":20,"averageRating":null}`,
			check: func(t *testing.T, l model.Listing) {
				assert.Nil(t, l.Rating)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := DecodeListing([]byte(tt.raw))
			require.NoError(t, err)
			tt.check(t, l)
		})
	}
}

func TestDecodeListing_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not an object", `"T001"`},
		{"unknown type", `{"id":"X","type":"BOAT","basePrice":1}`},
		{"bad price", `{"id":"X","type":"ITEM","basePrice":"cheap"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeListing([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeListings_SkipsBadRows(t *testing.T) {
	body := []byte(`[
		{"id":"T1","type":"TRANSPORT","basePrice":80},
		"garbage",
		{"id":"A1","type":"ACCOMMODATION","basePrice":120},
		{"id":"Z1","type":"SPACESHIP","basePrice":1}
	]`)

	listings, skipped, err := DecodeListings(body)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, 2, skipped)

	_, _, err = DecodeListings([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}
