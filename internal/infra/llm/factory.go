package llm

import (
	"fmt"
	"strings"
)

// NewProvider maps a resolved ProviderConfig to the matching client.
// Hosted providers fail fast with ErrMissingAPIKey when no credential is set;
// Ollama always constructs.
func NewProvider(cfg ProviderConfig, opts ...Option) (LLMProvider, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
		}
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, opts...), nil
	case ProviderGroq:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("groq: %w", ErrMissingAPIKey)
		}
		return NewGroqProvider(cfg.APIKey, cfg.Model, opts...), nil
	case ProviderOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
}
