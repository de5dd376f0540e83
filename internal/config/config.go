// Package config loads process-wide settings for the search service.
// Values come from defaults, then an optional YAML file, then the
// environment. The result is read-only once Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the search service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Cache         CacheConfig         `yaml:"cache"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Ranking       RankingConfig       `yaml:"ranking"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr             string        `yaml:"addr"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// CatalogConfig selects and configures the listing source.
type CatalogConfig struct {
	Driver      string        `yaml:"driver"` // http, file, fixture or postgres
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	DataFile    string        `yaml:"data_file"`
	PostgresDSN string        `yaml:"postgres_dsn"`
}

// CacheConfig configures the snapshot cache. An empty Addr disables it and
// the special address "memory" keeps snapshots in process.
type CacheConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
	Prefix   string        `yaml:"prefix"`
}

// KafkaConfig configures search event publishing and catalog change
// consumption. An empty Broker disables both.
type KafkaConfig struct {
	Broker        string `yaml:"broker"`
	SearchTopic   string `yaml:"search_topic"`
	ChangesTopic  string `yaml:"changes_topic"`
	ConsumerGroup string `yaml:"consumer_group"`
}

// RankingConfig picks the ordering rule for the configured data source.
type RankingConfig struct {
	Order string `yaml:"order"` // price or rating
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from a YAML file (when path is non-empty) and
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns development defaults. The catalog defaults mirror
// the listings backend: http://localhost:3000 with a 10 second read timeout.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             ":8080",
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     30 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Driver:   "http",
			BaseURL:  "http://localhost:3000",
			Timeout:  10 * time.Second,
			DataFile: "./data/listings.jsonl",
		},
		Cache: CacheConfig{
			TTL:    30 * time.Second,
			Prefix: "rs:",
		},
		Kafka: KafkaConfig{
			SearchTopic:   "search.performed",
			ChangesTopic:  "catalog.listings.changed",
			ConsumerGroup: "rental-search-cache",
		},
		Ranking: RankingConfig{Order: "price"},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			LogFormat:   "json",
			ServiceName: "rental-search",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Catalog.Driver {
	case "http":
		if c.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog base_url is required for the http driver")
		}
	case "file":
		if c.Catalog.DataFile == "" {
			return fmt.Errorf("catalog data_file is required for the file driver")
		}
	case "postgres":
		if c.Catalog.PostgresDSN == "" {
			return fmt.Errorf("catalog postgres_dsn is required for the postgres driver")
		}
	case "fixture":
	default:
		return fmt.Errorf("invalid catalog driver: %s", c.Catalog.Driver)
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive")
	}

	if c.Ranking.Order != "price" && c.Ranking.Order != "rating" {
		return fmt.Errorf("invalid ranking order: %s", c.Ranking.Order)
	}

	if c.Cache.Addr != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive when redis is configured")
	}
	return nil
}

// CacheEnabled reports whether a cache address is configured.
func (c *Config) CacheEnabled() bool { return c.Cache.Addr != "" }

// CacheInMemory reports whether snapshots stay in process instead of Redis.
func (c *Config) CacheInMemory() bool { return c.Cache.Addr == "memory" }

// KafkaEnabled reports whether a Kafka broker is configured.
func (c *Config) KafkaEnabled() bool { return c.Kafka.Broker != "" }

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	if v := os.Getenv("CATALOG_DRIVER"); v != "" {
		cfg.Catalog.Driver = v
	}
	if v := os.Getenv("ISHARE_API_URL"); v != "" {
		cfg.Catalog.BaseURL = strings.TrimRight(v, "/")
	}
	cfg.Catalog.Timeout = getEnvDuration("CATALOG_TIMEOUT", cfg.Catalog.Timeout)
	if v := os.Getenv("CATALOG_DATA_FILE"); v != "" {
		cfg.Catalog.DataFile = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Catalog.PostgresDSN = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	cfg.Cache.DB = getEnvInt("REDIS_DB", cfg.Cache.DB)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", cfg.Cache.TTL)

	if v := os.Getenv("KAFKA_BROKER"); v != "" {
		cfg.Kafka.Broker = v
	}
	if v := os.Getenv("KAFKA_SEARCH_TOPIC"); v != "" {
		cfg.Kafka.SearchTopic = v
	}
	if v := os.Getenv("KAFKA_CHANGES_TOPIC"); v != "" {
		cfg.Kafka.ChangesTopic = v
	}

	if v := os.Getenv("RANKING_ORDER"); v != "" {
		cfg.Ranking.Order = strings.ToLower(v)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// bare numbers are seconds
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
