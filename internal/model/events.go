package model

// SearchPerformed is emitted after every search call. It is published to
// Kafka topic search.performed for offline analysis of demand.
type SearchPerformed struct {
	RequestID   string   `json:"request_id"`
	Operation   string   `json:"operation"` // transport, accommodation, item, combined, multi
	Categories  []string `json:"categories"`
	ResultCount int      `json:"result_count"`
	Relaxed     bool     `json:"relaxed"` // fallback results were served
	SourceError string   `json:"source_error,omitempty"`
	DurationMS  int64    `json:"duration_ms"`
	Timestamp   string   `json:"timestamp"`
}

// ListingsChanged is consumed from topic catalog.listings.changed when the
// catalog owner creates, updates or removes listings.
type ListingsChanged struct {
	Category   Category `json:"category"`
	ListingIDs []string `json:"listing_ids,omitempty"`
	Timestamp  string   `json:"timestamp"`
}
