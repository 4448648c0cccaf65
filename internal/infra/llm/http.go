package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	mimeJSON            = "application/json"
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"

	defaultHTTPTimeout = 30 * time.Second
)

// Option customizes an adapter at construction time.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient replaces the default *http.Client (30s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithBaseURL overrides the fixed API base of a hosted provider.
// Used by tests to point adapters at an httptest server.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) {
		o.baseURL = u
	}
}

func newClientOptions(opts []Option) clientOptions {
	o := clientOptions{httpClient: &http.Client{Timeout: defaultHTTPTimeout}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// postJSON marshals payload, POSTs it to url and returns the response body.
// Caller is responsible for closing the returned ReadCloser.
// Non-2xx answers are reported as *ProviderHTTPError.
func postJSON(ctx context.Context, c *http.Client, p Provider, url string, header http.Header, payload any) (io.ReadCloser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s post: encode request: %w", p, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s post: build request: %w", p, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(headerContentType, mimeJSON)

	return do(c, p, req)
}

// getOK issues a GET and discards the body; used by health checks.
func getOK(ctx context.Context, c *http.Client, p Provider, url string, header http.Header) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s healthcheck: build request: %w", p, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	body, err := do(c, p, req)
	if err != nil {
		return fmt.Errorf("%s healthcheck: %w", p, err)
	}
	body.Close() //nolint:errcheck
	return nil
}

func do(c *http.Client, p Provider, req *http.Request) (io.ReadCloser, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s %s: %w", p, req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()              //nolint:errcheck
		return nil, &ProviderHTTPError{Provider: p, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func bearer(apiKey string) http.Header {
	h := http.Header{}
	h.Set(headerAuthorization, "Bearer "+apiKey)
	return h
}
