// Unit tests for OllamaProvider.
// Uses httptest.NewServer to mock the Ollama HTTP API; no real Ollama needed.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ============================================================================
// GenerateResponse tests
// ============================================================================

func TestOllamaProvider_GenerateResponse_Success(t *testing.T) {
	t.Parallel()

	var got ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			http.Error(w, "unexpected path", http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "" {
			http.Error(w, "unexpected auth header", http.StatusBadRequest)
			return
		}
		json.NewDecoder(r.Body).Decode(&got) //nolint:errcheck
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "Hello from Ollama", Done: true}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")
	resp, err := p.GenerateResponse(context.Background(), "SYSTEM", "hi")
	if err != nil {
		t.Fatalf("GenerateResponse failed: %v", err)
	}
	if resp != "Hello from Ollama" {
		t.Errorf("expected 'Hello from Ollama', got %q", resp)
	}
	if got.Model != "llama2" {
		t.Errorf("expected model 'llama2', got %q", got.Model)
	}
	if got.Prompt != "SYSTEM\n\nUser: hi\nAssistant:" {
		t.Errorf("unexpected prompt %q", got.Prompt)
	}
	if got.Stream {
		t.Error("expected stream=false")
	}
	if got.Options["num_predict"] != float64(500) {
		t.Errorf("expected num_predict 500, got %v", got.Options["num_predict"])
	}
}

func TestOllamaProvider_GenerateResponse_EmptyResponse_ReturnsFallbackSentence(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Done: true}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")
	resp, err := p.GenerateResponse(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("GenerateResponse failed: %v", err)
	}
	if resp != EmptyCompletionText {
		t.Errorf("expected %q, got %q", EmptyCompletionText, resp)
	}
}

func TestOllamaProvider_GenerateResponse_ServerError_ReturnsHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")
	_, err := p.GenerateResponse(context.Background(), "s", "u")
	var httpErr *ProviderHTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *ProviderHTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest || httpErr.Provider != ProviderOllama {
		t.Errorf("unexpected error fields %+v", httpErr)
	}
}

func TestOllamaProvider_GenerateResponse_Unreachable_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed before the call.

	p := NewOllamaProvider(srv.URL, "llama2")
	if _, err := p.GenerateResponse(context.Background(), "s", "u"); err == nil {
		t.Error("expected error when server is down, got nil")
	}
}

func TestOllamaProvider_GenerateResponse_ContextCanceled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewOllamaProvider(srv.URL, "llama2")
	_, err := p.GenerateResponse(ctx, "s", "u")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewOllamaProvider_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	p := NewOllamaProvider("", "llama2")
	if p.baseURL != DefaultOllamaBaseURL {
		t.Errorf("expected default base url, got %q", p.baseURL)
	}
}

// ============================================================================
// HealthCheck tests
// ============================================================================

func TestOllamaProvider_HealthCheck_Healthy(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{"models": []interface{}{}}) //nolint:errcheck
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")
	if err := p.HealthCheck(context.Background()); err != nil {
		t.Errorf("expected healthy, got error: %v", err)
	}
}

func TestOllamaProvider_HealthCheck_Down_ReturnsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	srv.Close()

	p := NewOllamaProvider(srv.URL, "llama2")
	if err := p.HealthCheck(context.Background()); err == nil {
		t.Error("expected error when server is down, got nil")
	}
}

// ============================================================================
// ModelInfo / options tests
// ============================================================================

func TestOllamaProvider_ModelInfo_ReturnsMetadata(t *testing.T) {
	t.Parallel()

	meta := NewOllamaProvider("http://localhost:11434", "llama2").ModelInfo()
	if meta.ID != "llama2" {
		t.Errorf("expected model ID 'llama2', got %q", meta.ID)
	}
	if meta.Provider != ProviderOllama {
		t.Errorf("expected provider 'ollama', got %q", meta.Provider)
	}
}

func TestBuildGenerateOptions_BothZero_ReturnsNil(t *testing.T) {
	t.Parallel()

	if opts := buildGenerateOptions(0, 0); opts != nil {
		t.Errorf("expected nil opts, got %v", opts)
	}
}

func TestBuildGenerateOptions_Defaults(t *testing.T) {
	t.Parallel()

	opts := buildGenerateOptions(DefaultTemperature, DefaultMaxTokens)
	if opts["temperature"] != float32(0.7) {
		t.Errorf("expected temperature 0.7, got %v", opts["temperature"])
	}
	if opts["num_predict"] != 500 {
		t.Errorf("expected num_predict 500, got %v", opts["num_predict"])
	}
}
