// Package discovery exposes the search operations over HTTP.
package discovery

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"rental-search/internal/catalog"
	"rental-search/internal/model"
	"rental-search/internal/observability"
)

// maxBodyBytes bounds request bodies; search queries are a few hundred bytes.
const maxBodyBytes = 1 << 20

// Searcher is the search surface served over HTTP.
type Searcher interface {
	SearchTransport(ctx context.Context, q model.TransportQuery) model.CategoryResult
	SearchAccommodation(ctx context.Context, q model.AccommodationQuery) model.CategoryResult
	SearchItem(ctx context.Context, q model.ItemQuery) model.CategoryResult
	SearchCombined(ctx context.Context, q model.CombinedQuery) model.CombinedResult
	SearchMultiple(ctx context.Context, q model.MultiQuery) model.MultiResult
}

// Service serves search requests.
type Service struct {
	engine   Searcher
	source   catalog.Source
	validate *validator.Validate
	logger   *observability.Logger
}

// NewService creates a Service. source backs /catalog/stats and should be
// the same source the engine reads.
func NewService(engine Searcher, source catalog.Source, logger *observability.Logger) *Service {
	if logger == nil {
		logger = observability.Nop()
	}
	return &Service{
		engine:   engine,
		source:   source,
		validate: validator.New(),
		logger:   logger.WithComponent("discovery"),
	}
}

// RegisterRoutes wires the search API.
func (s *Service) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/search/transport", s.transportHandler).Methods(http.MethodPost)
	r.HandleFunc("/search/accommodation", s.accommodationHandler).Methods(http.MethodPost)
	r.HandleFunc("/search/items", s.itemHandler).Methods(http.MethodPost)
	r.HandleFunc("/search/combined", s.combinedHandler).Methods(http.MethodPost)
	r.HandleFunc("/search/multi", s.multiHandler).Methods(http.MethodPost)
	r.HandleFunc("/catalog/stats", s.statsHandler).Methods(http.MethodGet)
	r.HandleFunc("/listings/{id}", s.listingHandler).Methods(http.MethodGet)
}

func (s *Service) transportHandler(w http.ResponseWriter, r *http.Request) {
	var q model.TransportQuery
	if !s.decode(w, r, &q) {
		return
	}
	writeJSON(w, r, http.StatusOK, s.engine.SearchTransport(r.Context(), q))
}

func (s *Service) accommodationHandler(w http.ResponseWriter, r *http.Request) {
	var q model.AccommodationQuery
	if !s.decode(w, r, &q) {
		return
	}
	writeJSON(w, r, http.StatusOK, s.engine.SearchAccommodation(r.Context(), q))
}

func (s *Service) itemHandler(w http.ResponseWriter, r *http.Request) {
	var q model.ItemQuery
	if !s.decode(w, r, &q) {
		return
	}
	writeJSON(w, r, http.StatusOK, s.engine.SearchItem(r.Context(), q))
}

func (s *Service) combinedHandler(w http.ResponseWriter, r *http.Request) {
	var q model.CombinedQuery
	if !s.decode(w, r, &q) {
		return
	}
	res := s.engine.SearchCombined(r.Context(), q)
	status := http.StatusOK
	if res.IsError() {
		status = http.StatusBadRequest
	}
	writeJSON(w, r, status, res)
}

func (s *Service) multiHandler(w http.ResponseWriter, r *http.Request) {
	var q model.MultiQuery
	if !s.decode(w, r, &q) {
		return
	}
	res := s.engine.SearchMultiple(r.Context(), q)
	status := http.StatusOK
	if res.IsError() {
		status = http.StatusBadRequest
	}
	writeJSON(w, r, status, res)
}

// listingHandler returns one listing in search result form, without tags.
func (s *Service) listingHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	l, err := catalog.FetchListing(r.Context(), s.source, id)
	switch {
	case errors.Is(err, catalog.ErrListingNotFound):
		writeJSON(w, r, http.StatusNotFound, model.NewErrorResult(fmt.Sprintf("Listing %s not found.", id)))
	case err != nil:
		s.logger.WithContext(r.Context()).Warn().Err(err).Str("listing_id", id).Msg("listing lookup failed")
		writeJSON(w, r, http.StatusBadGateway, model.NewErrorResult(catalog.Describe(err)))
	default:
		writeJSON(w, r, http.StatusOK, model.NewSearchResult(l, nil))
	}
}

// CategoryStats reports the size of one category pool.
type CategoryStats struct {
	Category string `json:"category"`
	Listings int    `json:"listings"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// statsHandler reads every category pool concurrently and reports counts.
func (s *Service) statsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make([]CategoryStats, len(model.Categories))

	var wg sync.WaitGroup
	for i, c := range model.Categories {
		wg.Add(1)
		go func(i int, c model.Category) {
			defer wg.Done()
			st := CategoryStats{Category: c.Key(), Status: "ok"}
			listings, err := s.source.FetchListings(ctx, c)
			if err != nil {
				st.Status = "unavailable"
				st.Error = catalog.Describe(err)
			}
			st.Listings = len(listings)
			stats[i] = st
		}(i, c)
	}
	wg.Wait()

	writeJSON(w, r, http.StatusOK, map[string]any{"categories": stats})
}

// decode reads a JSON body, optionally gzip compressed, and validates it.
// On failure it writes a 400 error result and returns false. An empty body
// is an empty query.
func (s *Service) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	reader := io.Reader(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
		gr, err := gzip.NewReader(reader)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, model.NewErrorResult("failed to decompress gzip body"))
			return false
		}
		defer gr.Close()
		reader = gr
	}

	if err := json.NewDecoder(reader).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, r, http.StatusBadRequest, model.NewErrorResult("invalid JSON body: "+err.Error()))
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.logger.WithContext(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("request rejected")
		writeJSON(w, r, http.StatusBadRequest, model.NewErrorResult(validationMessage(err)))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must be %s %s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// writeJSON encodes v, gzip compressed when the client accepts it. The
// body is encoded before the header goes out so an unencodable value
// becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(model.NewErrorResult("failed to encode response"))
	}
	body = append(body, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.Header().Add("Vary", "Accept-Encoding")

	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(status)
		gw := gzip.NewWriter(w)
		defer gw.Close()
		_, _ = gw.Write(body)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
