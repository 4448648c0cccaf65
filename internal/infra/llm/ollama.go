// Package llm: Ollama HTTP adapter.
// OllamaProvider calls the local Ollama REST API; no credential is sent.
// Endpoints used:
//   - POST /api/generate: non-streaming single-prompt completion
//   - GET  /api/tags: health check (lists available models)
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultOllamaBaseURL is the address of a locally running Ollama daemon.
const DefaultOllamaBaseURL = "http://localhost:11434"

// OllamaProvider implements LLMProvider against a running Ollama instance.
type OllamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider creates an OllamaProvider with a 30s default timeout.
// An empty baseURL falls back to DefaultOllamaBaseURL.
func NewOllamaProvider(baseURL, model string, opts ...Option) *OllamaProvider {
	o := newClientOptions(opts)
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	return &OllamaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: o.httpClient,
	}
}

// ─── internal Ollama JSON types ──────────────────────────────────────────────

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response   string `json:"response"`
	DoneReason string `json:"done_reason"`
	Done       bool   `json:"done"`
}

// ─── LLMProvider implementation ─────────────────────────────────────────────

// GenerateResponse performs a non-streaming completion via POST /api/generate.
// Ollama's generate endpoint takes one prompt, so the system prompt and the
// user turn are concatenated into a transcript ending in "Assistant:".
func (p *OllamaProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body, err := postJSON(ctx, p.httpClient, ProviderOllama, p.baseURL+"/api/generate", nil, ollamaGenerateRequest{
		Model:   p.model,
		Prompt:  buildGeneratePrompt(systemPrompt, userMessage),
		Stream:  false,
		Options: buildGenerateOptions(DefaultTemperature, DefaultMaxTokens),
	})
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck

	var resp ollamaGenerateResponse
	if decodeErr := json.NewDecoder(body).Decode(&resp); decodeErr != nil {
		return "", fmt.Errorf("ollama: decode generate response: %w", decodeErr)
	}
	if resp.Response == "" {
		return EmptyCompletionText, nil
	}
	return resp.Response, nil
}

// buildGeneratePrompt renders the single-prompt transcript sent to /api/generate.
func buildGeneratePrompt(systemPrompt, userMessage string) string {
	return systemPrompt + "\n\nUser: " + userMessage + "\nAssistant:"
}

// buildGenerateOptions converts sampling parameters into the Ollama options map.
func buildGenerateOptions(temperature float32, maxTokens int) map[string]any {
	opts := map[string]any{}
	if temperature != 0 {
		opts["temperature"] = temperature
	}
	if maxTokens != 0 {
		opts["num_predict"] = maxTokens
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// ModelInfo returns static metadata for this provider/model.
func (p *OllamaProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: ProviderOllama, MaxTokens: DefaultMaxTokens}
}

// HealthCheck calls GET /api/tags; returns nil if Ollama is reachable.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	return getOK(ctx, p.httpClient, ProviderOllama, p.baseURL+"/api/tags", nil)
}
