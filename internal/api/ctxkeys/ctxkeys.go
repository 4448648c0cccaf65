// Package ctxkeys holds the context keys shared by the api middleware and
// handlers. It is a leaf package to avoid import cycles between them.
package ctxkeys

import "context"

// Key is the named type for all API context keys.
// Using a named type avoids collisions with string keys from other packages
// at runtime (context.Value compares both type and value).
type Key string

const (
	// Subject is the authenticated admin identity, injected by AuthMiddleware
	// from the JWT "sub" claim.
	Subject Key = "subject"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// String returns the non-empty string stored under key.
func String(ctx context.Context, key Key) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
