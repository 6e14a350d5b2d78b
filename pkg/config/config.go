// Package config loads service configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Deal store backends.
const (
	DealStoreMemory   = "memory"
	DealStoreFile     = "file"
	DealStorePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogPretty bool

	ModelsConfigPath       string // YAML provider/agent config
	PromptsDir             string // prompt overrides, optional
	BenchmarkOverridesPath string // JSON/Hjson benchmark overrides, optional

	DealStore   string
	DealsFile   string
	DatabaseURL string
	Workspace   string

	RequestTimeout time.Duration
	AllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                   getEnvAsInt("PORT", 8080),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogPretty:              getEnvAsBool("LOG_PRETTY", false),
		ModelsConfigPath:       getEnv("MODELS_CONFIG", "config/models.yaml"),
		PromptsDir:             getEnv("PROMPTS_DIR", "resources/prompts"),
		BenchmarkOverridesPath: getEnv("BENCHMARK_OVERRIDES", ""),
		DealsFile:              getEnv("DEALS_FILE", "data/deals.json"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		Workspace:              getEnv("DEALS_WORKSPACE", "default"),
		RequestTimeout:         time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		AllowedOrigins:         getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}

	// Postgres when a database is configured, otherwise a local file.
	defaultStore := DealStoreFile
	if cfg.DatabaseURL != "" {
		defaultStore = DealStorePostgres
	}
	cfg.DealStore = strings.ToLower(getEnv("DEAL_STORE", defaultStore))

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.DealStore {
	case DealStoreMemory:
	case DealStoreFile:
		if c.DealsFile == "" {
			return fmt.Errorf("DEALS_FILE is required for the file deal store")
		}
	case DealStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres deal store")
		}
	default:
		return fmt.Errorf("unknown DEAL_STORE %q", c.DealStore)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
