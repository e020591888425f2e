// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`
	// GeminiAPIKey is required; startup aborts without it.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	// Embeddings via an OpenAI-compatible endpoint.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	EmbeddingsModel string `env:"EMBEDDINGS_MODEL" envDefault:"text-embedding-3-small"`
	EmbedCacheSize  int    `env:"EMBED_CACHE_SIZE" envDefault:"2048"`
	// TikaURL specifies the base URL for the Apache Tika server used for text extraction.
	TikaURL string `env:"TIKA_URL" envDefault:"http://tika:9998"`
	// Data sources, read once at startup.
	TaxonomyPath     string `env:"TAXONOMY_PATH" envDefault:"configs/skill_taxonomy.yaml"`
	QuestionBankPath string `env:"QUESTION_BANK_PATH" envDefault:"configs/question_bank.yaml"`
	AuditLogPath     string `env:"AUDIT_LOG_PATH" envDefault:"audit_log.jsonl"`
	// Observability
	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"ai-interview-prep"`
	// HTTP surface
	MaxUploadMB           int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	// Retry Configuration for model calls
	RetryMaxAttempts     int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialInterval time.Duration `env:"RETRY_INITIAL_INTERVAL" envDefault:"2s"`
	RetryMaxInterval     time.Duration `env:"RETRY_MAX_INTERVAL" envDefault:"10s"`
	RetryMultiplier      float64       `env:"RETRY_MULTIPLIER" envDefault:"2.0"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// GetRetryConfig returns retry parameters appropriate for the current
// environment. Test environments use much shorter delays so retry paths can
// be exercised without real waits.
func (c Config) GetRetryConfig() (maxAttempts int, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return c.RetryMaxAttempts, 10 * time.Millisecond, 100 * time.Millisecond, 2.0
	}
	return c.RetryMaxAttempts, c.RetryInitialInterval, c.RetryMaxInterval, c.RetryMultiplier
}
