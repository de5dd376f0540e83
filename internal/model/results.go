package model

import "encoding/json"

// Response type discriminators carried on every result envelope.
const (
	TypeTransportResults     = "transport_results"
	TypeAccommodationResults = "accommodation_results"
	TypeItemResults          = "item_results"
	TypeCombinedResults      = "combined_results"
	TypeMultiCategoryResults = "multi_category_results"
	TypeError                = "error"
)

// SearchResult is one surviving listing, flattened for the caller, with the
// tags explaining why it was suggested. Vehicle and item fields are inlined
// through the embedded attribute pointers; nil pointers contribute nothing.
type SearchResult struct {
	ListingID     string   `json:"listingId"`
	Category      Category `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	PricePerDay   float64  `json:"pricePerDay"`
	Images        []string `json:"images"`
	Status        string   `json:"status"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Model         string   `json:"model,omitempty"`

	*TransportAttrs
	*AccommodationAttrs
	*ItemAttrs

	Tags []string `json:"tags"`
}

// NewSearchResult copies the listing into a result. Attribute structs are
// copied so the result never aliases the source snapshot.
func NewSearchResult(l *Listing, tags []string) SearchResult {
	images := l.Images
	if images == nil {
		images = []string{}
	} else {
		images = append([]string(nil), images...)
	}
	if tags == nil {
		tags = []string{}
	}

	r := SearchResult{
		ListingID:     l.ID,
		Category:      l.Category,
		Title:         l.Title,
		Description:   l.Description,
		Address:       l.Address,
		PricePerDay:   l.BasePrice,
		Images:        images,
		Status:        l.Status,
		AverageRating: l.Rating,
		Brand:         l.Brand,
		Model:         l.Model,
		Tags:          tags,
	}
	if l.Transport != nil {
		t := *l.Transport
		r.TransportAttrs = &t
	}
	if l.Accommodation != nil {
		a := *l.Accommodation
		a.Amenities = append([]string(nil), a.Amenities...)
		r.AccommodationAttrs = &a
	}
	if l.Item != nil {
		i := *l.Item
		r.ItemAttrs = &i
	}
	return r
}

// CategoryResult is the outcome of one single-category search.
type CategoryResult struct {
	Type     string         `json:"type,omitempty"`
	Category string         `json:"category,omitempty"`
	Message  string         `json:"message"`
	Results  []SearchResult `json:"results"`

	// Relaxed is set when the results come from the fallback resolver
	// rather than an exact match.
	Relaxed bool `json:"relaxed,omitempty"`
	// SourceError carries the catalog error when the pool could not be read.
	SourceError string `json:"sourceError,omitempty"`
}

// BundleItem is one listing inside a cross-category bundle.
type BundleItem struct {
	Category string       `json:"category"`
	Listing  SearchResult `json:"listing"`
}

// Bundle is a joint selection of listings across categories costed against
// one shared budget.
type Bundle struct {
	Items           []BundleItem `json:"items"`
	TotalCost       float64      `json:"totalCost"`
	TotalCostPerDay float64      `json:"totalCostPerDay"`
	RemainingBudget float64      `json:"remainingBudget"`
	Tags            []string     `json:"tags"`
}

// CombinedResult is returned by the combined-budget search.
type CombinedResult struct {
	Type         string   `json:"type"`
	Message      string   `json:"message"`
	TotalBudget  float64  `json:"totalBudget"`
	NumDays      int      `json:"numDays"`
	Combinations []Bundle `json:"combinations"`

	// Skipped lists requested categories that had no candidates at all.
	Skipped []string `json:"skippedCategories,omitempty"`
	// Partial is set when bundles were built without some requested
	// categories, so RemainingBudget does not cover them.
	Partial bool `json:"partial,omitempty"`
}

// MultiResult aggregates independent single-category searches.
type MultiResult struct {
	Type    string           `json:"type"`
	Message string           `json:"message"`
	Results []CategoryResult `json:"results"`
}

// ErrorResult is the structured usage-error value. It is returned, never thrown.
type ErrorResult struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorResult builds an ErrorResult with the error discriminator set.
func NewErrorResult(msg string) ErrorResult {
	return ErrorResult{Type: TypeError, Message: msg}
}

// IsError reports whether the combined search was rejected as a usage error.
func (r CombinedResult) IsError() bool { return r.Type == TypeError }

// MarshalJSON renders usage errors as a bare ErrorResult so callers never
// mistake them for an empty combination list.
func (r CombinedResult) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		return json.Marshal(NewErrorResult(r.Message))
	}
	type plain CombinedResult
	if r.Combinations == nil {
		r.Combinations = []Bundle{}
	}
	return json.Marshal(plain(r))
}

// IsError reports whether the multi-category search was rejected as a usage error.
func (r MultiResult) IsError() bool { return r.Type == TypeError }

// MarshalJSON renders usage errors as a bare ErrorResult.
func (r MultiResult) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		return json.Marshal(NewErrorResult(r.Message))
	}
	type plain MultiResult
	if r.Results == nil {
		r.Results = []CategoryResult{}
	}
	return json.Marshal(plain(r))
}
