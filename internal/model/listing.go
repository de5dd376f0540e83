package model

import "strings"

// Category is the catalog `type` of a listing.
type Category string

const (
	CategoryTransport     Category = "TRANSPORT"
	CategoryAccommodation Category = "ACCOMMODATION"
	CategoryItem          Category = "ITEM"
)

// Categories lists every category in the fixed order used when results from
// several categories are merged.
var Categories = []Category{CategoryTransport, CategoryAccommodation, CategoryItem}

// Key returns the lowercase name used in JSON result blocks and CLI output.
func (c Category) Key() string {
	return strings.ToLower(string(c))
}

// ParseCategory accepts the catalog spelling as well as the lowercase keys
// ("transport", "accommodation", "item"/"items").
func ParseCategory(s string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRANSPORT", "VEHICLE", "VEHICLES":
		return CategoryTransport, true
	case "ACCOMMODATION", "ACCOMMODATIONS", "STAY":
		return CategoryAccommodation, true
	case "ITEM", "ITEMS":
		return CategoryItem, true
	}
	return "", false
}

// Listing is a single rentable unit. The common attributes live on the
// struct itself; exactly one of Transport, Accommodation or Item is set and
// must agree with Category.
type Listing struct {
	ID          string   `json:"id"`
	Category    Category `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"basePrice"`
	Address     string   `json:"address"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	Rating      *float64 `json:"averageRating,omitempty"`

	// Brand and Model are shared by vehicles (make/model) and items.
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`

	Transport     *TransportAttrs     `json:"transport,omitempty"`
	Accommodation *AccommodationAttrs `json:"accommodation,omitempty"`
	Item          *ItemAttrs          `json:"item,omitempty"`
}

// TransportAttrs are the vehicle-specific fields.
type TransportAttrs struct {
	VehicleType  string `json:"vehicleType,omitempty"`
	Year         *int   `json:"year,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	Seats        *int   `json:"seats,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
}

// AccommodationAttrs are the place-to-stay fields. MaxGuests is the
// capacity of the property.
type AccommodationAttrs struct {
	PropertyType  string   `json:"propertyType,omitempty"`
	MaxGuests     *int     `json:"maxGuests,omitempty"`
	BedCount      *int     `json:"bedCount,omitempty"`
	RoomCount     *int     `json:"roomCount,omitempty"`
	BathroomCount *int     `json:"bathroomCount,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	Tier          string   `json:"tier,omitempty"`
}

// ItemAttrs are the general rental item fields.
type ItemAttrs struct {
	ItemCategory string `json:"category,omitempty"`
	Condition    string `json:"condition,omitempty"`
}

// VehicleType returns the vehicle type, or "" for non-transport listings.
func (l *Listing) VehicleType() string {
	if l.Transport == nil {
		return ""
	}
	return l.Transport.VehicleType
}

// PropertyType returns the property type, or "" for non-accommodation listings.
func (l *Listing) PropertyType() string {
	if l.Accommodation == nil {
		return ""
	}
	return l.Accommodation.PropertyType
}

// Capacity returns the guest capacity. A missing value counts as 0.
func (l *Listing) Capacity() int {
	if l.Accommodation == nil || l.Accommodation.MaxGuests == nil {
		return 0
	}
	return *l.Accommodation.MaxGuests
}

// Year returns the manufacture year. A missing value counts as 0.
func (l *Listing) Year() int {
	if l.Transport == nil || l.Transport.Year == nil {
		return 0
	}
	return *l.Transport.Year
}

// ItemCategory returns the item category, or "" for non-item listings.
func (l *Listing) ItemCategory() string {
	if l.Item == nil {
		return ""
	}
	return l.Item.ItemCategory
}

// IntPtr and FloatPtr are small helpers for building optional fields.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
