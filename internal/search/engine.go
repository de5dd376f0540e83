package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rental-search/internal/catalog"
	"rental-search/internal/model"
	"rental-search/internal/observability"
)

// Publisher receives one event per completed search.
type Publisher interface {
	PublishSearch(ctx context.Context, evt model.SearchPerformed)
}

type nopPublisher struct{}

func (nopPublisher) PublishSearch(context.Context, model.SearchPerformed) {}

// Engine runs searches against a catalog source. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	source    catalog.Source
	order     Order
	now       func() time.Time
	logger    *observability.Logger
	publisher Publisher
}

// Option configures an Engine.
type Option func(*Engine)

// WithOrder sets the ranking rule. The default is OrderPrice.
func WithOrder(o Order) Option {
	return func(e *Engine) { e.order = o }
}

// WithClock overrides the clock used by the recency tags and event
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *observability.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithPublisher sets where search events go.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// NewEngine creates an Engine reading from source.
func NewEngine(source catalog.Source, opts ...Option) *Engine {
	e := &Engine{
		source:    source,
		order:     OrderPrice,
		now:       time.Now,
		logger:    observability.Nop(),
		publisher: nopPublisher{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("search")
	return e
}

// Order returns the ranking rule in use.
func (e *Engine) Order() Order { return e.order }

// SearchTransport implements search_transport.
func (e *Engine) SearchTransport(ctx context.Context, q model.TransportQuery) model.CategoryResult {
	return e.single(ctx, "transport", transportPlan(q))
}

// SearchAccommodation implements search_accommodation.
func (e *Engine) SearchAccommodation(ctx context.Context, q model.AccommodationQuery) model.CategoryResult {
	return e.single(ctx, "accommodation", accommodationPlan(q))
}

// SearchItem implements search_item.
func (e *Engine) SearchItem(ctx context.Context, q model.ItemQuery) model.CategoryResult {
	return e.single(ctx, "item", itemPlan(q))
}

func (e *Engine) single(ctx context.Context, op string, p plan) model.CategoryResult {
	ctx, start := e.begin(ctx)
	res := e.run(ctx, p)
	e.finish(ctx, start, model.SearchPerformed{
		Operation:   op,
		Categories:  []string{p.category.Key()},
		ResultCount: len(res.Results),
		Relaxed:     res.Relaxed,
		SourceError: res.SourceError,
	})
	return res
}

// run reads one pool and resolves the plan against it. A failed read is
// an empty pool with the source error attached.
func (e *Engine) run(ctx context.Context, p plan) model.CategoryResult {
	pool, err := e.source.FetchListings(ctx, p.category)
	if err != nil {
		desc := catalog.Describe(err)
		e.logger.WithContext(ctx).Warn().Err(err).
			Str("category", string(p.category)).
			Msg("listing source unavailable")
		return model.CategoryResult{
			Type:        p.resultType,
			Category:    p.category.Key(),
			Message:     fmt.Sprintf("No %s listings available. %s", p.category.Key(), desc),
			Results:     []model.SearchResult{},
			SourceError: desc,
		}
	}

	res := resolve(pool, p, e.order, e.now().Year())
	e.logger.WithContext(ctx).Debug().
		Str("category", string(p.category)).
		Int("pool", len(pool)).
		Int("results", len(res.Results)).
		Bool("relaxed", res.Relaxed).
		Msg("category resolved")
	return res
}

// begin makes sure ctx carries a request id.
func (e *Engine) begin(ctx context.Context) (context.Context, time.Time) {
	if observability.RequestIDFromContext(ctx) == "" {
		ctx = observability.ContextWithRequestID(ctx, uuid.NewString())
	}
	return ctx, time.Now()
}

func (e *Engine) finish(ctx context.Context, start time.Time, evt model.SearchPerformed) {
	elapsed := time.Since(start)
	evt.RequestID = observability.RequestIDFromContext(ctx)
	evt.DurationMS = elapsed.Milliseconds()
	evt.Timestamp = e.now().UTC().Format(time.RFC3339)

	e.logger.WithContext(ctx).Info().
		Str("operation", evt.Operation).
		Strs("categories", evt.Categories).
		Int("results", evt.ResultCount).
		Bool("relaxed", evt.Relaxed).
		Dur("duration", elapsed).
		Msg("search completed")

	e.publisher.PublishSearch(ctx, evt)
}
