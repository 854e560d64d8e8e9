// Package persistence holds cross-cutting helpers shared by the
// storage implementations.
package persistence

import "context"

// requestIDKey is the context key for the propagated request ID.
type requestIDKey struct{}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns the empty string if none is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
