// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env setup:
// with no credentials the chatbot talks to a local Ollama daemon.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Profile sources accepted in PROFILE_SOURCE.
const (
	ProfileSourceFile   = "file"
	ProfileSourceSQLite = "sqlite"
)

// LLM groups the provider credentials and overrides read by llm.Resolver.
type LLM struct {
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"`
	GroqAPIKey    string `env:"GROQ_API_KEY"`
	GroqModel     string `env:"GROQ_MODEL"`
	OllamaBaseURL string `env:"OLLAMA_BASE_URL"`
	OllamaModel   string `env:"OLLAMA_MODEL"`
}

// Config holds runtime configuration for folio.
type Config struct {
	LLM LLM

	// HTTP
	HTTPHost    string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort    int           `env:"HTTP_PORT" envDefault:"8080"`
	ChatTimeout time.Duration `env:"CHAT_TIMEOUT" envDefault:"30s"`

	// Chatbot
	ResponseCacheSize int `env:"RESPONSE_CACHE_SIZE" envDefault:"256"`

	// Profile data
	ProfileSource       string `env:"PROFILE_SOURCE" envDefault:"file"`
	ProfilePath         string `env:"PROFILE_PATH" envDefault:"data/portfolio.yaml"`
	SummaryPath         string `env:"SUMMARY_PATH"`
	ExternalProfilePath string `env:"EXTERNAL_PROFILE_PATH"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/folio.db"`

	// Admin
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `env:"JWT_SECRET"`
	JWTExpiry         time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
}

// AdminEnabled reports whether the JWT-protected admin routes should be mounted.
func (c Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.JWTSecret != ""
}

// Load reads an optional .env file from the working directory and then parses
// environment variables, applying defaults for missing values.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return parse()
}

// parse maps the process environment onto Config and validates enumerations.
func parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	switch cfg.ProfileSource {
	case ProfileSourceFile, ProfileSourceSQLite:
	default:
		return Config{}, fmt.Errorf("config: PROFILE_SOURCE must be %q or %q, got %q",
			ProfileSourceFile, ProfileSourceSQLite, cfg.ProfileSource)
	}
	if cfg.ChatTimeout <= 0 {
		return Config{}, fmt.Errorf("config: CHAT_TIMEOUT must be positive, got %s", cfg.ChatTimeout)
	}
	return cfg, nil
}
