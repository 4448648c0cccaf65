package llm

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Default models per provider when no override is configured.
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGroqModel   = "llama-3.1-8b-instant"
	DefaultOllamaModel = "llama2"
)

// Env is the raw provider-related configuration the Resolver selects from.
// Empty strings mean "not set".
type Env struct {
	OpenAIAPIKey  string
	OpenAIModel   string
	GroqAPIKey    string
	GroqModel     string
	OllamaBaseURL string
	OllamaModel   string
}

// ProviderInfo is the secret-free description of the resolved backend.
type ProviderInfo struct {
	Provider   Provider `json:"provider"`
	Model      string   `json:"model"`
	Configured bool     `json:"configured"`
}

// Resolver derives one ProviderConfig from Env in fixed priority order
// (OpenAI, then Groq, then Ollama) and memoizes it for its lifetime.
type Resolver struct {
	env    Env
	logger *slog.Logger

	once sync.Once
	cfg  ProviderConfig
}

// NewResolver creates a Resolver. A nil logger uses slog.Default().
func NewResolver(env Env, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{env: env, logger: logger}
}

// Resolve returns the active ProviderConfig, building it on first call.
// Resolution never fails: without credentials it selects Ollama.
func (r *Resolver) Resolve() ProviderConfig {
	r.once.Do(func() {
		r.cfg = selectProvider(r.env)
		r.logger.Info("llm provider selected", "provider", string(r.cfg.Provider), "model", r.cfg.Model)
	})
	return r.cfg
}

// IsConfigured reports whether the resolved provider can be called:
// Ollama always, hosted providers only with a non-empty credential.
func (r *Resolver) IsConfigured() bool {
	cfg := r.Resolve()
	if cfg.Provider == ProviderOllama {
		return true
	}
	return cfg.Provider.RequiresAPIKey() && cfg.APIKey != ""
}

// Info returns the provider/model labels and the configured flag.
func (r *Resolver) Info() ProviderInfo {
	cfg := r.Resolve()
	return ProviderInfo{
		Provider:   cfg.Provider,
		Model:      lo.CoalesceOrEmpty(cfg.Model, "unknown"),
		Configured: r.IsConfigured(),
	}
}

func selectProvider(env Env) ProviderConfig {
	if key := strings.TrimSpace(env.OpenAIAPIKey); key != "" {
		return ProviderConfig{
			Provider: ProviderOpenAI,
			APIKey:   key,
			Model:    lo.CoalesceOrEmpty(env.OpenAIModel, DefaultOpenAIModel),
		}
	}
	if key := strings.TrimSpace(env.GroqAPIKey); key != "" {
		return ProviderConfig{
			Provider: ProviderGroq,
			APIKey:   key,
			Model:    lo.CoalesceOrEmpty(env.GroqModel, DefaultGroqModel),
		}
	}
	return ProviderConfig{
		Provider: ProviderOllama,
		BaseURL:  lo.CoalesceOrEmpty(env.OllamaBaseURL, DefaultOllamaBaseURL),
		Model:    lo.CoalesceOrEmpty(env.OllamaModel, DefaultOllamaModel),
	}
}
