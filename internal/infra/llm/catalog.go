package llm

import "github.com/samber/lo"

// CatalogEntry describes a supported provider for UI pickers.
type CatalogEntry struct {
	ID             Provider `json:"id"`
	Name           string   `json:"name"`
	Models         []string `json:"models"`
	RequiresAPIKey bool     `json:"requiresApiKey"`
	Description    string   `json:"description"`
}

var catalog = []CatalogEntry{
	{
		ID:          ProviderOpenAI,
		Name:        "OpenAI",
		Models:      []string{DefaultOpenAIModel, "gpt-4o", "gpt-3.5-turbo"},
		Description: "Hosted GPT models via the OpenAI chat-completions API.",
	},
	{
		ID:          ProviderGroq,
		Name:        "Groq",
		Models:      []string{DefaultGroqModel, "llama-3.3-70b-versatile", "mixtral-8x7b-32768"},
		Description: "Low-latency hosted open models behind an OpenAI-compatible API.",
	},
	{
		ID:          ProviderOllama,
		Name:        "Ollama",
		Models:      []string{DefaultOllamaModel, "llama3.2:3b", "mistral"},
		Description: "Local models served by an Ollama daemon; no API key needed.",
	},
}

// Catalog lists the supported providers in resolution priority order.
// The returned slice is a copy.
func Catalog() []CatalogEntry {
	return lo.Map(catalog, func(e CatalogEntry, _ int) CatalogEntry {
		e.Models = append([]string(nil), e.Models...)
		e.RequiresAPIKey = e.ID.RequiresAPIKey()
		return e
	})
}
