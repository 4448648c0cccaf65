// Package llm defines the model-agnostic LLM provider abstraction.
// All types here are shared between the provider interface, the adapters and
// the configuration resolver.
package llm

// Provider identifies one of the supported LLM backends.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderOllama Provider = "ollama"
)

// RequiresAPIKey reports whether the provider authenticates with a bearer credential.
func (p Provider) RequiresAPIKey() bool {
	return p == ProviderOpenAI || p == ProviderGroq
}

// Generation parameters shared by every adapter.
const (
	DefaultTemperature float32 = 0.7
	DefaultMaxTokens           = 500
)

// EmptyCompletionText is returned when a provider answers 2xx without any text.
const EmptyCompletionText = "I'm sorry, I couldn't generate a response."

// ProviderConfig is the single active backend selection. Immutable once resolved.
type ProviderConfig struct {
	Provider Provider
	APIKey   string // empty for ollama
	BaseURL  string // empty for hosted providers (fixed endpoints)
	Model    string
}

// Message represents a single turn in a conversation (role + content).
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Roles used in Message.Role.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ModelMeta describes the model / provider identity.
type ModelMeta struct {
	ID        string // e.g. "gpt-4o-mini", "llama2"
	Provider  Provider
	MaxTokens int // Response-length cap sent with every request.
}
