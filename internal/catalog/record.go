package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"rental-search/internal/model"
)

// record is the wire shape of one catalog row. The backend is loose about
// types (prices arrive as decimal strings, ids as numbers) and about names
// (make/brand, numGuests/maxGuests, location/address), so every field is
// decoded leniently and normalised in toListing.
type record struct {
	ID          flexString `json:"id"`
	ListingID   flexString `json:"listingId"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	BasePrice   flexFloat  `json:"basePrice"`
	Address     string     `json:"address"`
	Location    string     `json:"location"`
	Images      []flexURL  `json:"images"`
	Status      string     `json:"status"`

	AverageRating flexFloat `json:"averageRating"`
	Rating        flexFloat `json:"rating"`

	Brand string `json:"brand"`
	Make  string `json:"make"`
	Model string `json:"model"`

	VehicleType  string  `json:"vehicleType"`
	Year         flexInt `json:"year"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuelType"`
	Seats        flexInt `json:"seats"`
	LicensePlate string  `json:"licensePlate"`

	PropertyType  string   `json:"propertyType"`
	MaxGuests     flexInt  `json:"maxGuests"`
	NumGuests     flexInt  `json:"numGuests"`
	BedCount      flexInt  `json:"bedCount"`
	RoomCount     flexInt  `json:"roomCount"`
	BathroomCount flexInt  `json:"bathroomCount"`
	Amenities     []string `json:"amenities"`
	Tier          string   `json:"tier"`

	Category     string `json:"category"`
	ItemCategory string `json:"itemCategory"`
	Condition    string `json:"condition"`
}

// DecodeListing parses one catalog record.
func DecodeListing(raw []byte) (model.Listing, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return model.Listing{}, fmt.Errorf("listing record is not an object")
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Listing{}, fmt.Errorf("decode listing: %w", err)
	}
	return rec.toListing()
}

// DecodeListings parses a JSON array of records. Rows that are not objects
// or fail to decode are skipped and counted.
func DecodeListings(body []byte) ([]model.Listing, int, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, 0, fmt.Errorf("decode listings: %w", err)
	}
	listings := make([]model.Listing, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		l, err := DecodeListing(row)
		if err != nil {
			skipped++
			continue
		}
		listings = append(listings, l)
	}
	return listings, skipped, nil
}

func (r *record) toListing() (model.Listing, error) {
	category, ok := model.ParseCategory(r.Type)
	if !ok {
		return model.Listing{}, fmt.Errorf("unknown listing type %q", r.Type)
	}

	id := r.ID.v
	if id == "" {
		id = r.ListingID.v
	}
	address := r.Address
	if address == "" {
		address = r.Location
	}
	brand := r.Brand
	if brand == "" {
		brand = r.Make
	}

	l := model.Listing{
		ID:          id,
		Category:    category,
		Title:       r.Title,
		Description: r.Description,
		BasePrice:   r.BasePrice.v,
		Address:     address,
		Images:      make([]string, 0, len(r.Images)),
		Status:      r.Status,
		Brand:       brand,
		Model:       r.Model,
	}
	for _, img := range r.Images {
		if img.v != "" {
			l.Images = append(l.Images, img.v)
		}
	}
	switch {
	case r.AverageRating.set:
		l.Rating = model.FloatPtr(r.AverageRating.v)
	case r.Rating.set:
		l.Rating = model.FloatPtr(r.Rating.v)
	}

	switch category {
	case model.CategoryTransport:
		l.Transport = &model.TransportAttrs{
			VehicleType:  r.VehicleType,
			Year:         r.Year.ptr(),
			Transmission: r.Transmission,
			FuelType:     r.FuelType,
			Seats:        r.Seats.ptr(),
			LicensePlate: r.LicensePlate,
		}
	case model.CategoryAccommodation:
		guests := r.MaxGuests
		if !guests.set {
			guests = r.NumGuests
		}
		l.Accommodation = &model.AccommodationAttrs{
			PropertyType:  r.PropertyType,
			MaxGuests:     guests.ptr(),
			BedCount:      r.BedCount.ptr(),
			RoomCount:     r.RoomCount.ptr(),
			BathroomCount: r.BathroomCount.ptr(),
			Amenities:     r.Amenities,
			Tier:          r.Tier,
		}
	case model.CategoryItem:
		itemCategory := r.Category
		if itemCategory == "" {
			itemCategory = r.ItemCategory
		}
		l.Item = &model.ItemAttrs{
			ItemCategory: itemCategory,
			Condition:    r.Condition,
		}
	}
	return l, nil
}

// flexFloat accepts a JSON number, a numeric string or null.
type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.v, f.set = v, true
	return nil
}

// flexInt accepts a JSON number, a numeric string or null.
type flexInt struct {
	v   int
	set bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	f.v, f.set = int(v), true
	return nil
}

func (f flexInt) ptr() *int {
	if !f.set {
		return nil
	}
	return model.IntPtr(f.v)
}

// flexString accepts a JSON string or number.
type flexString struct {
	v string
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	f.v = unquote(b)
	return nil
}

// flexURL accepts either a bare URL string or an object with a url field.
type flexURL struct {
	v string
}

func (f *flexURL) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		f.v = obj.URL
		return nil
	}
	f.v = unquote(b)
	return nil
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return ""
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	return strings.TrimSpace(s)
}
