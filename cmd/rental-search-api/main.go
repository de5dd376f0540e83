package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"rental-search/internal/app"
	"rental-search/internal/config"
	"rental-search/internal/discovery"
	"rental-search/internal/httpapi"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// no logger yet; config decides its shape
		app.NewLogger(config.DefaultConfig()).Fatal().Err(err).Msg("load config")
	}
	logger := app.NewLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg, logger, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("build service")
	}
	defer a.Close()

	// Catalog change notices invalidate cached pools.
	a.StartChangeConsumer(ctx)

	r := httpapi.NewRouter(logger)
	discovery.NewService(a.Engine, a.Source, logger).RegisterRoutes(r)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpapi.WithCORS(r, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}()

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Str("catalog", cfg.Catalog.Driver).
		Str("ranking", cfg.Ranking.Order).
		Bool("cache", cfg.CacheEnabled()).
		Bool("kafka", cfg.KafkaEnabled()).
		Msg("rental search API listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server error")
	}
}
