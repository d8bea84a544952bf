package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store providers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	// Pagination defaults for the demo pages
	ItemsPerPage         int
	DefaultPage          int
	MaxPagesToShow       int
	AlwaysShowPagination bool
	URLPattern           string // must contain (:num)

	// Item source
	Store         string // "memory" or "postgres"
	DemoItemCount int    // number of generated items for the memory store
	DatabaseUrl   string // required when Store is "postgres"

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		// Pagination defaults match the reference demo
		ItemsPerPage:         getEnvInt("ITEMS_PER_PAGE", 50),
		DefaultPage:          getEnvInt("DEFAULT_PAGE", 8),
		MaxPagesToShow:       getEnvInt("MAX_PAGES_TO_SHOW", 10),
		AlwaysShowPagination: getEnvBool("ALWAYS_SHOW_PAGINATION", false),
		URLPattern:           getEnv("URL_PATTERN", "?page=(:num)"),

		Store:         strings.ToLower(getEnv("STORE", StoreMemory)),
		DemoItemCount: getEnvInt("DEMO_ITEM_COUNT", 1000),
		DatabaseUrl:   os.Getenv("DATABASE_URL"),

		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the pagination defaults and the store selection.
func (cfg *Config) Validate() error {
	if cfg.ItemsPerPage < 1 {
		return fmt.Errorf("ITEMS_PER_PAGE must be >= 1, got: %d", cfg.ItemsPerPage)
	}
	if cfg.DefaultPage < 1 {
		return fmt.Errorf("DEFAULT_PAGE must be >= 1, got: %d", cfg.DefaultPage)
	}
	if cfg.MaxPagesToShow < 3 {
		return fmt.Errorf("MAX_PAGES_TO_SHOW must be >= 3, got: %d", cfg.MaxPagesToShow)
	}
	if cfg.DemoItemCount < 0 {
		return fmt.Errorf("DEMO_ITEM_COUNT must be >= 0, got: %d", cfg.DemoItemCount)
	}

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE is 'postgres'")
		}
	default:
		return fmt.Errorf("STORE must be either 'memory' or 'postgres', got: %s", cfg.Store)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
