package catalog

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-search/internal/model"
)

const listingsBody = `[
	{"id":"T001","type":"TRANSPORT","title":"Toyota Camry 2018","basePrice":80,"vehicleType":"car"},
	{"id":"A001","type":"ACCOMMODATION","title":"Cozy Apartment","basePrice":150,"propertyType":"Apartment"},
	{"id":"I001","type":"ITEM","title":"Canon DSLR Camera","basePrice":60,"category":"Electronics"},
	{"id":"T002","type":"TRANSPORT","title":"Honda City 2019","basePrice":70,"vehicleType":"car"}
]`

func TestHTTPSource_FetchListings_FiltersByCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/listings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingsBody))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", time.Second)

	transport, err := src.FetchListings(context.Background(), model.CategoryTransport)
	require.NoError(t, err)
	require.Len(t, transport, 2)
	assert.Equal(t, "T001", transport[0].ID)
	assert.Equal(t, "T002", transport[1].ID)

	items, err := src.FetchListings(context.Background(), model.CategoryItem)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Electronics", items[0].ItemCategory())
}

func TestHTTPSource_FetchListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/listings/T001" {
			_, _ = w.Write([]byte(`{"id":"T001","type":"TRANSPORT","basePrice":80}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)

	l, err := src.FetchListing(context.Background(), "T001")
	require.NoError(t, err)
	assert.Equal(t, 80.0, l.BasePrice)

	_, err = src.FetchListing(context.Background(), "T999")
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestHTTPSource_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).FetchListings(context.Background(), model.CategoryTransport)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.NotErrorIs(t, err, ErrSourceConnection)
	assert.NotErrorIs(t, err, ErrSourceTimeout)
}

func TestHTTPSource_ConnectionRefused(t *testing.T) {
	// Grab a free port and close it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewHTTPSource("http://"+addr, time.Second).FetchListings(context.Background(), model.CategoryTransport)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceConnection)
}

func TestHTTPSource_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPSource(srv.URL, 50*time.Millisecond).FetchListings(context.Background(), model.CategoryTransport)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceTimeout)
}
