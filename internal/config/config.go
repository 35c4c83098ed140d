package config

import (
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Notion API
	NotionToken      string
	NotionPageID     string // collection holding the posts
	NotionAPIURL     string
	NotionVersion    string
	NotionRateLimit  float64 // requests per second, 0 disables throttling
	NotionMaxRetries int
	NotionBackoff    string

	// Caches
	IndexCacheTTL time.Duration
	TreeCacheTTL  time.Duration
	ActorCacheTTL time.Duration

	// Materialization
	IndexConcurrency     int
	TraversalMode        string
	TraversalConcurrency int
	MaxTreeDepth         int

	SiteConfigPath string
	LogDir         string
	LogMaxFiles    int

	MetricsEnabled bool
	MCPEnabled     bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionPageID:     getEnv("NOTION_PAGE_ID", ""),
		NotionAPIURL:     getEnv("NOTION_API_URL", "https://api.notion.com"),
		NotionVersion:    getEnv("NOTION_VERSION", "2022-06-28"),
		NotionRateLimit:  getFloat("NOTION_RATE_LIMIT", 3),
		NotionMaxRetries: getInt("NOTION_MAX_RETRIES", 3),
		NotionBackoff:    getEnv("NOTION_BACKOFF", "exponential"),

		IndexCacheTTL: getDuration("INDEX_CACHE_TTL", 5*time.Minute),
		TreeCacheTTL:  getDuration("TREE_CACHE_TTL", 10*time.Minute),
		ActorCacheTTL: getDuration("ACTOR_CACHE_TTL", 30*time.Minute),

		IndexConcurrency:     getInt("INDEX_CONCURRENCY", 8),
		TraversalMode:        getEnv("TRAVERSAL_MODE", "sequential"),
		TraversalConcurrency: getInt("TRAVERSAL_CONCURRENCY", 4),
		MaxTreeDepth:         getInt("MAX_TREE_DEPTH", 32),

		SiteConfigPath: getEnv("SITE_CONFIG", "site.yaml"),
		LogDir:         getEnv("LOG_DIR", ""),
		LogMaxFiles:    getInt("LOG_MAX_FILES", 10),

		// Metrics default on outside prod
		MetricsEnabled: getEnv("METRICS_ENABLED", getDefaultMetrics(env)) == "true",
		MCPEnabled:     getEnv("MCP_ENABLED", "false") == "true",
	}
}

// Validate checks required settings and ranges
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&c.NotionToken, validation.Required),
		validation.Field(&c.NotionPageID, validation.Required),
		validation.Field(&c.NotionAPIURL, validation.Required, is.URL),
		validation.Field(&c.NotionVersion, validation.Required),
		validation.Field(&c.NotionRateLimit, validation.Min(0.0)),
		validation.Field(&c.NotionMaxRetries, validation.Min(0), validation.Max(MaxRetries)),
		validation.Field(&c.NotionBackoff, validation.In("fixed", "linear", "exponential")),
		validation.Field(&c.IndexCacheTTL, validation.Required, validation.Min(MinCacheTTL)),
		validation.Field(&c.TreeCacheTTL, validation.Required, validation.Min(MinCacheTTL)),
		validation.Field(&c.ActorCacheTTL, validation.Required, validation.Min(MinCacheTTL)),
		validation.Field(&c.IndexConcurrency, validation.Min(1), validation.Max(MaxConcurrency)),
		validation.Field(&c.TraversalMode, validation.In("sequential", "parallel")),
		validation.Field(&c.TraversalConcurrency, validation.Min(1), validation.Max(MaxConcurrency)),
		validation.Field(&c.MaxTreeDepth, validation.Min(1), validation.Max(MaxTreeDepth)),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// getDefaultMetrics returns the default metrics setting based on environment
func getDefaultMetrics(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt falls back to defaultValue when the variable is unset or malformed
func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return f
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultValue
}
