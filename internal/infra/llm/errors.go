package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned by NewProvider when a hosted provider has no credential.
	ErrMissingAPIKey = errors.New("llm: api key is required")

	// ErrUnsupportedProvider is returned by NewProvider for an unknown provider tag.
	ErrUnsupportedProvider = errors.New("llm: unsupported provider")
)

// ProviderHTTPError reports a non-2xx answer from a provider endpoint.
type ProviderHTTPError struct {
	Provider   Provider
	StatusCode int
}

func (e *ProviderHTTPError) Error() string {
	return fmt.Sprintf("%s API error: status %d", e.Provider, e.StatusCode)
}
