package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the key type for context values set at the HTTP boundary.
type ContextKey string

// RequestIDKey is the context key for the per-request correlation ID.
const RequestIDKey ContextKey = "requestID"

// SetRequestID adds a freshly generated correlation ID to the context. Error
// responses and log lines for the same request share it.
func SetRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RequestIDKey, uuid.NewString())
}

// GetRequestID retrieves the correlation ID from the context, or an empty
// string if none was set.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
