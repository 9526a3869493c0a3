// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values: the authenticated session, the request id and the
// request time.
//
// The session is an explicit value threaded through context rather than
// process-wide state. Transport middleware installs it after resolving the
// bearer token; services read it without I/O:
//
//	ctx = requestcontext.WithSession(ctx, session)
//	sess, ok := requestcontext.Session(ctx)
package requestcontext

import (
	"context"
	"time"
)

type (
	sessionKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Session retrieves the value installed by WithSession. The caller chooses the
// concrete type; ok is false when nothing of type T is present.
func Session[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(sessionKey{}).(T)
	return v, ok
}

// WithSession injects the active session into the context.
func WithSession(ctx context.Context, session any) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// WithoutSession masks any session installed further up the context chain.
func WithoutSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, nil)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
