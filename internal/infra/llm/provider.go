// Package llm: LLMProvider interface.
// Adapters (OpenAI, Groq, Ollama) implement this interface so the chatbot
// is never coupled to a specific LLM vendor.
package llm

import "context"

// LLMProvider is the model-agnostic interface every backend client satisfies.
type LLMProvider interface {
	// GenerateResponse sends one system prompt and one user message and returns
	// the reply text. Exactly one outbound HTTP call is made; no retries.
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
