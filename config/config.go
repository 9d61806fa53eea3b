package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Catalog source kinds
const (
	CatalogSourceMemory   = "memory"
	CatalogSourceSQLite   = "sqlite"
	CatalogSourcePostgres = "postgres"
	CatalogSourceHTTP     = "http"
)

// reviewThreshold is the only accepted matching.review_threshold value.
const reviewThreshold = 0.45

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Matching  MatchingConfig
	History   HistoryConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig selects where products and prices are loaded from
type CatalogConfig struct {
	Source  string        `mapstructure:"source"` // memory, sqlite, postgres or http
	DSN     string        `mapstructure:"dsn"`    // sqlite path or postgres connection string
	URL     string        `mapstructure:"url"`    // feed base URL for the http source
	Timeout time.Duration `mapstructure:"timeout"`
	Seed    bool          `mapstructure:"seed"` // write the reference catalog into an empty database
}

// MatchingConfig holds product matching configuration
type MatchingConfig struct {
	ReviewThreshold    float64 `mapstructure:"review_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// HistoryConfig holds comparison history configuration
type HistoryConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricecart/")

	// PRICECART_SERVER_PORT -> server.port
	v.SetEnvPrefix("PRICECART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory if present. Variables
// already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.source", CatalogSourceMemory)
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout", "30s")
	v.SetDefault("catalog.seed", true)

	// Matching defaults
	v.SetDefault("matching.review_threshold", reviewThreshold)
	v.SetDefault("matching.enable_debug_logging", false)

	// History defaults
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.ttl", "24h")
	v.SetDefault("history.max_entries", 20)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case CatalogSourceMemory:
	case CatalogSourceSQLite, CatalogSourcePostgres:
		if config.Catalog.DSN == "" {
			return fmt.Errorf("catalog DSN is required for source %q (set PRICECART_CATALOG_DSN)", config.Catalog.Source)
		}
	case CatalogSourceHTTP:
		if config.Catalog.URL == "" {
			return fmt.Errorf("catalog URL is required for source %q (set PRICECART_CATALOG_URL)", config.Catalog.Source)
		}
	default:
		return fmt.Errorf("catalog source must be one of memory, sqlite, postgres, http, got: %s", config.Catalog.Source)
	}

	if config.Matching.ReviewThreshold != reviewThreshold {
		return fmt.Errorf("matching review threshold is fixed at %.2f, got: %v", reviewThreshold, config.Matching.ReviewThreshold)
	}

	if config.History.Enabled && config.History.MaxEntries <= 0 {
		return fmt.Errorf("history max entries must be positive, got: %d", config.History.MaxEntries)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit per IP must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
