package model

// Search request bodies. Every filter is optional; a zero or nil value
// means "no constraint". Validation only rejects values that cannot be a
// constraint at all (negative prices, ratings outside 0..5).

// TransportQuery models search_transport.
type TransportQuery struct {
	Location       string   `json:"location,omitempty"`
	MaxPricePerDay *float64 `json:"max_price_per_day,omitempty" validate:"omitempty,gte=0"`
	VehicleType    string   `json:"vehicle_type,omitempty"`
	Make           string   `json:"make,omitempty"`
	Model          string   `json:"model,omitempty"`
	MinYear        int      `json:"min_year,omitempty" validate:"omitempty,gte=0"`
	MinRating      *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// AccommodationQuery models search_accommodation. MaxGuests is the party
// size: a listing matches when its capacity is at least this many guests.
type AccommodationQuery struct {
	Location       string   `json:"location,omitempty"`
	MaxPricePerDay *float64 `json:"max_price_per_day,omitempty" validate:"omitempty,gte=0"`
	PropertyType   string   `json:"property_type,omitempty"`
	MaxGuests      int      `json:"max_guests,omitempty" validate:"omitempty,gte=0"`
	MinRating      *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// ItemQuery models search_item.
type ItemQuery struct {
	Location       string   `json:"location,omitempty"`
	MaxPricePerDay *float64 `json:"max_price_per_day,omitempty" validate:"omitempty,gte=0"`
	ItemCategory   string   `json:"item_category,omitempty"`
	Keyword        string   `json:"keyword,omitempty"`
	MinRating      *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// CombinedQuery models search_with_combined_budget. Price is governed by
// TotalBudget, so there is no per-day price filter here.
type CombinedQuery struct {
	TotalBudget         float64 `json:"total_budget"`
	NumDays             int     `json:"num_days,omitempty" validate:"omitempty,gte=0"`
	SearchTransport     bool    `json:"search_transport"`
	SearchAccommodation bool    `json:"search_accommodation"`
	SearchItems         bool    `json:"search_items"`

	Location     string `json:"location,omitempty"`
	VehicleType  string `json:"vehicle_type,omitempty"`
	Make         string `json:"make,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	MaxGuests    int    `json:"max_guests,omitempty" validate:"omitempty,gte=0"`
	ItemCategory string `json:"item_category,omitempty"`
	Keyword      string `json:"keyword,omitempty"`
}

// MultiQuery models search_multiple_categories. Location and
// MaxPricePerDay apply to every enabled category unless the per-category
// block sets its own value.
type MultiQuery struct {
	SearchTransport     bool `json:"search_transport"`
	SearchAccommodation bool `json:"search_accommodation"`
	SearchItems         bool `json:"search_items"`

	Location       string   `json:"location,omitempty"`
	MaxPricePerDay *float64 `json:"max_price_per_day,omitempty" validate:"omitempty,gte=0"`

	Transport     *TransportQuery     `json:"transport,omitempty" validate:"omitempty"`
	Accommodation *AccommodationQuery `json:"accommodation,omitempty" validate:"omitempty"`
	Item          *ItemQuery          `json:"item,omitempty" validate:"omitempty"`
}
