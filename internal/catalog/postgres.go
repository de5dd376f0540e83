package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	_ "github.com/lib/pq"

	"rental-search/internal/model"
)

// listingsQuery serialises whole rows so the same lenient decoder handles
// both the REST backend and direct database reads.
const listingsQuery = `SELECT row_to_json(l) FROM listings l WHERE UPPER(l.type::text) = $1`

// PostgresSource reads listings straight from the catalog database.
type PostgresSource struct {
	db *sql.DB
}

// OpenPostgres connects to the catalog database. A failed ping is not fatal:
// the backend may still be starting and each fetch reports its own error.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	if err := db.PingContext(ctx); err != nil {
		return &PostgresSource{db: db}, fmt.Errorf("postgres ping: %w", classify(err))
	}
	return &PostgresSource{db: db}, nil
}

// NewPostgresSource wraps an existing handle.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// FetchListings returns the listings of one category.
func (s *PostgresSource) FetchListings(ctx context.Context, category model.Category) ([]model.Listing, error) {
	rows, err := s.db.QueryContext(ctx, listingsQuery, string(category))
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	listings := []model.Listing{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		l, err := DecodeListing(raw)
		if err != nil {
			continue
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError(err)
	}
	return listings, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

func pgError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return classify(err)
	}
	return fmt.Errorf("catalog query failed: %w", err)
}
