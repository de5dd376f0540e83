// Package app assembles the search service from configuration. Both the
// API server and the CLI build their dependencies here.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"rental-search/internal/cache"
	"rental-search/internal/catalog"
	"rental-search/internal/config"
	"rental-search/internal/kstream"
	"rental-search/internal/observability"
	"rental-search/internal/search"
)

// publisher is what the engine publishes to, plus shutdown.
type publisher interface {
	search.Publisher
	Close() error
}

// App holds the wired components.
type App struct {
	Config *config.Config
	Logger *observability.Logger
	// Source is the fully decorated catalog source the engine reads.
	Source catalog.Source
	// Cache is nil when caching is disabled.
	Cache  *cache.CachedSource
	Engine *search.Engine

	publisher publisher
	closers   []func() error
}

// NewLogger builds the process logger from configuration.
func NewLogger(cfg *config.Config) *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		Output:      os.Stderr,
		ServiceName: cfg.Observability.ServiceName,
	})
}

// New wires source, cache, publisher and engine. withEvents controls
// whether search events go to Kafka; the CLI leaves it off.
func New(ctx context.Context, cfg *config.Config, logger *observability.Logger, withEvents bool) (*App, error) {
	if logger == nil {
		logger = NewLogger(cfg)
	}
	a := &App{Config: cfg, Logger: logger}

	order, err := search.ParseOrder(cfg.Ranking.Order)
	if err != nil {
		return nil, err
	}

	src, err := a.openSource(ctx)
	if err != nil {
		return nil, err
	}
	src = catalog.NewGatedSource(src, logger)

	if cfg.CacheEnabled() {
		var store cache.Store
		if cfg.CacheInMemory() {
			store = cache.NewMemoryStore()
		} else {
			rs := cache.NewRedisStore(cache.RedisConfig{
				Addr:     cfg.Cache.Addr,
				Password: cfg.Cache.Password,
				DB:       cfg.Cache.DB,
				Prefix:   cfg.Cache.Prefix,
			})
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			if err := rs.Ping(pingCtx); err != nil {
				logger.Warn().Err(err).Str("addr", cfg.Cache.Addr).Msg("redis not reachable yet, searches read the catalog directly")
			}
			cancel()
			store = rs
		}
		a.closers = append(a.closers, store.Close)
		a.Cache = cache.NewCachedSource(src, store, cfg.Cache.TTL, logger)
		src = a.Cache
	}
	a.Source = src

	a.publisher = kstream.NopPublisher{}
	if withEvents && cfg.KafkaEnabled() {
		w := kstream.NewWriter(cfg.Kafka.Broker, cfg.Kafka.SearchTopic, logger)
		a.publisher = kstream.NewSearchPublisher(w, logger)
	}
	a.closers = append(a.closers, a.publisher.Close)

	a.Engine = search.NewEngine(src,
		search.WithOrder(order),
		search.WithLogger(logger),
		search.WithPublisher(a.publisher),
	)
	return a, nil
}

func (a *App) openSource(ctx context.Context) (catalog.Source, error) {
	c := a.Config.Catalog
	switch c.Driver {
	case "http":
		return catalog.NewHTTPSource(c.BaseURL, c.Timeout), nil
	case "file":
		return catalog.NewFileSource(c.DataFile), nil
	case "fixture":
		return catalog.NewFixtureSource(), nil
	case "postgres":
		pingCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()
		pg, err := catalog.OpenPostgres(pingCtx, c.PostgresDSN)
		if pg == nil {
			return nil, err
		}
		if err != nil {
			a.Logger.Warn().Err(err).Msg("catalog database not reachable yet")
		}
		a.closers = append(a.closers, pg.Close)
		return pg, nil
	}
	return nil, fmt.Errorf("unknown catalog driver %q", c.Driver)
}

// StartChangeConsumer runs the catalog change consumer until ctx is done.
// It is a no-op when Kafka or the cache is not configured.
func (a *App) StartChangeConsumer(ctx context.Context) {
	if !a.Config.KafkaEnabled() || a.Cache == nil {
		return
	}
	k := a.Config.Kafka
	reader := kstream.NewReader(k.Broker, k.ChangesTopic, k.ConsumerGroup)
	go func() {
		if err := kstream.ConsumeListingChanges(ctx, reader, a.Cache, a.Logger); err != nil {
			a.Logger.Error().Err(err).Msg("catalog change consumer stopped")
		}
	}()
}

// Close releases everything New opened, last opened first.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
