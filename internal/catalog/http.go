package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rental-search/internal/model"
)

// HTTPSource reads listings from the catalog backend's REST API.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates a source for baseURL (e.g. http://localhost:3000).
// timeout bounds every request, including body read.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAll returns every listing the backend knows about, regardless of
// category. Records that cannot be decoded are skipped.
func (s *HTTPSource) FetchAll(ctx context.Context) ([]model.Listing, error) {
	body, err := s.get(ctx, "/listings")
	if err != nil {
		return nil, err
	}
	listings, _, err := DecodeListings(body)
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// FetchListings returns the listings of one category.
func (s *HTTPSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return byCategory(all, category), nil
}

// FetchListing returns a single listing by id.
func (s *HTTPSource) FetchListing(ctx context.Context, id string) (*model.Listing, error) {
	body, err := s.get(ctx, "/listings/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	l, err := DecodeListing(body)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *HTTPSource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrListingNotFound, path)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}
	return body, nil
}

// classify maps transport errors onto the sentinel errors so callers can
// tell a dead backend from a slow one.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrSourceTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrSourceTimeout, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %v", ErrSourceConnection, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrSourceConnection, err)
	}
	return fmt.Errorf("catalog request failed: %w", err)
}
