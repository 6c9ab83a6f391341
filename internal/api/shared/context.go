package shared

import (
	"context"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

const (
	// PrincipalIDContextKey is the context key for the authenticated
	// principal's ID, when a request carries one.
	PrincipalIDContextKey ContextKey = "principalID"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a freshly generated trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetPrincipalID records the authenticated principal's ID in the context.
func SetPrincipalID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, PrincipalIDContextKey, id)
}

// GetPrincipalID retrieves the principal ID from the context. The second
// return value is false for anonymous requests.
func GetPrincipalID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(PrincipalIDContextKey).(int64)
	return id, ok
}
