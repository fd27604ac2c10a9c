package ctxutil

import (
	"context"
	"strings"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
)

// WithActor stores the display name of the caller in the context.
// The engine performs no authentication; the name is taken as given.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey, strings.TrimSpace(name))
}

// ActorFromCtx extracts the caller name from the context.
// Returns "" and false if the value is missing, blank, or of the wrong type.
func ActorFromCtx(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(actorKey).(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
