// Package config centralises all environment configuration for the API.
// It should be imported only by `cmd/...` (and test code). Business‑logic
// layers receive an already‑built Config instance via dependency‑injection.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderVertex = "vertex"
	ProviderDummy  = "dummy"
)

// DefaultOrigin is the Vite dev server the frontend runs on locally.
const DefaultOrigin = "http://localhost:5173"

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port        string `env:"PORT" env-default:"5000"`
	FrontendURL string `env:"FRONTEND_URL"`
	CORSOrigins string `env:"CORS_ORIGINS"` // comma separated, added to FrontendURL

	// Data stores
	MongoURI string `env:"MONGODB_URI" env-required:"true"`
	DBName   string `env:"DB_NAME" env-default:"autoguide_ai"`
	RedisURL string `env:"REDIS_URL"` // empty disables the guide cache
	CacheTTL int    `env:"CACHE_TTL_SEC" env-default:"300"`

	// LLM provider
	LLMProvider   string `env:"LLM_PROVIDER" env-default:"openai"`
	LLMTimeoutSec int    `env:"LLM_TIMEOUT_SEC" env-default:"60"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" env-default:"gpt-4.1-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// ProjectID and Location
	ProjectID       string `env:"GCP_PROJECT_ID"`
	Location        string `env:"GCP_LOCATION" env-default:"us-central1"`
	VertexModel     string `env:"VERTEX_MODEL" env-default:"gemini-2.0-flash-lite-001"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Embeddings (related guides)
	EmbeddingsEnabled bool   `env:"EMBEDDINGS_ENABLED" env-default:"false"`
	EmbeddingModel    string `env:"EMBEDDING_MODEL" env-default:"text-embedding-005"`

	// Server tuning
	ReadTimeoutSec  int    `env:"READ_TIMEOUT_SEC" env-default:"10"`
	WriteTimeoutSec int    `env:"WRITE_TIMEOUT_SEC" env-default:"90"`
	LogLevel        string `env:"LOG_LEVEL" env-default:"info"`
}

// Load parses the environment (and an optional .env file) into Config.
func Load() (Config, error) {
	// godotenv.Load() fails when .env doesn't exist—safe to ignore in production.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the provider-specific requirements cleanenv tags can't express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.MongoURI) == "" {
		return errors.New("config: MONGODB_URI is required")
	}
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("config: OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	case ProviderVertex:
		if c.ProjectID == "" {
			return errors.New("config: GCP_PROJECT_ID is required when LLM_PROVIDER=vertex")
		}
	case ProviderDummy:
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	// The dummy provider embeds locally; the others use Vertex embeddings.
	if c.EmbeddingsEnabled && c.ProjectID == "" && c.LLMProvider != ProviderDummy {
		return errors.New("config: GCP_PROJECT_ID is required when EMBEDDINGS_ENABLED=true")
	}
	return nil
}

// AllowedOrigins returns the CORS origins: the local dev server, FRONTEND_URL
// and every entry of CORS_ORIGINS, de-duplicated, in that order.
func (c Config) AllowedOrigins() []string {
	seen := map[string]bool{}
	var out []string
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			return
		}
		seen[o] = true
		out = append(out, o)
	}
	add(DefaultOrigin)
	add(c.FrontendURL)
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		add(o)
	}
	return out
}

func (c Config) ReadTimeout() time.Duration  { return seconds(c.ReadTimeoutSec, 10) }
func (c Config) WriteTimeout() time.Duration { return seconds(c.WriteTimeoutSec, 90) }
func (c Config) LLMTimeout() time.Duration   { return seconds(c.LLMTimeoutSec, 60) }
func (c Config) CacheTTLDuration() time.Duration {
	return seconds(c.CacheTTL, 300)
}

// seconds converts n to a duration, falling back to def when n isn't positive.
func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
