// Package llm: OpenAI-compatible chat-completions adapter.
// One implementation serves both hosted providers: OpenAI and Groq expose the
// same JSON schema and bearer-token auth, differing only in base URL.
// Endpoints used:
//   - POST {base}/chat/completions: non-streaming chat completion
//   - GET  {base}/models: health check
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GroqBaseURL   = "https://api.groq.com/openai/v1"
)

// ChatCompletionsProvider implements LLMProvider against an OpenAI-style API.
type ChatCompletionsProvider struct {
	provider   Provider
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIProvider creates the OpenAI client.
func NewOpenAIProvider(apiKey, model string, opts ...Option) *ChatCompletionsProvider {
	return newChatCompletionsProvider(ProviderOpenAI, OpenAIBaseURL, apiKey, model, opts)
}

// NewGroqProvider creates the Groq client.
func NewGroqProvider(apiKey, model string, opts ...Option) *ChatCompletionsProvider {
	return newChatCompletionsProvider(ProviderGroq, GroqBaseURL, apiKey, model, opts)
}

func newChatCompletionsProvider(p Provider, base, apiKey, model string, opts []Option) *ChatCompletionsProvider {
	o := newClientOptions(opts)
	if o.baseURL != "" {
		base = o.baseURL
	}
	return &ChatCompletionsProvider{
		provider:   p,
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: o.httpClient,
	}
}

// ─── wire types ──────────────────────────────────────────────────────────────

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float32                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

type chatCompletionChoice struct {
	Message *chatCompletionMessage `json:"message"`
}

type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
}

// ─── LLMProvider implementation ─────────────────────────────────────────────

// GenerateResponse performs a single non-streaming chat completion.
func (p *ChatCompletionsProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body, err := postJSON(ctx, p.httpClient, p.provider, p.baseURL+"/chat/completions", bearer(p.apiKey), chatCompletionRequest{
		Model: p.model,
		Messages: []chatCompletionMessage{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userMessage},
		},
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	})
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck

	var resp chatCompletionResponse
	if decodeErr := json.NewDecoder(body).Decode(&resp); decodeErr != nil {
		return "", fmt.Errorf("%s: decode chat response: %w", p.provider, decodeErr)
	}
	return firstChoiceText(resp), nil
}

// firstChoiceText extracts choices[0].message.content or the literal fallback sentence.
func firstChoiceText(resp chatCompletionResponse) string {
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == "" {
		return EmptyCompletionText
	}
	return resp.Choices[0].Message.Content
}

// ModelInfo returns static metadata for this provider/model.
func (p *ChatCompletionsProvider) ModelInfo() ModelMeta {
	return ModelMeta{ID: p.model, Provider: p.provider, MaxTokens: DefaultMaxTokens}
}

// HealthCheck calls GET {base}/models with the bearer credential.
func (p *ChatCompletionsProvider) HealthCheck(ctx context.Context) error {
	return getOK(ctx, p.httpClient, p.provider, p.baseURL+"/models", bearer(p.apiKey))
}
