// Compile-time interface satisfaction checks.
// Ensures every adapter satisfies LLMProvider without running any HTTP calls.
package llm

import "testing"

func TestAdapters_ImplementLLMProvider(t *testing.T) {
	t.Parallel()

	var _ LLMProvider = &OllamaProvider{}
	var _ LLMProvider = &ChatCompletionsProvider{}
}

func TestProvider_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	if !ProviderOpenAI.RequiresAPIKey() || !ProviderGroq.RequiresAPIKey() {
		t.Error("hosted providers must require an api key")
	}
	if ProviderOllama.RequiresAPIKey() {
		t.Error("ollama must not require an api key")
	}
}

func TestProviderHTTPError_Message(t *testing.T) {
	t.Parallel()

	err := &ProviderHTTPError{Provider: ProviderGroq, StatusCode: 429}
	if err.Error() != "groq API error: status 429" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
