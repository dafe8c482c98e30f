package middleware

import (
	"context"

	"rescathena.com/web/internal/reveal"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeyIsHTMX    ctxKey = "is_htmx"
	ctxKeyReveal    ctxKey = "reveal"
	ctxKeyCSRF      ctxKey = "csrf_token"
)

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithTracker stores the page's reveal tracker in context
func WithTracker(ctx context.Context, t *reveal.Tracker) context.Context {
	return context.WithValue(ctx, ctxKeyReveal, t)
}

// TrackerFromContext returns the reveal tracker, or a fresh default one
func TrackerFromContext(ctx context.Context) *reveal.Tracker {
	if t, ok := ctx.Value(ctxKeyReveal).(*reveal.Tracker); ok && t != nil {
		return t
	}
	return reveal.NewTracker(reveal.DefaultThreshold)
}

// CSRFTokenFromContext returns the token issued for the current request (to embed in forms).
func CSRFTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(ctxKeyCSRF).(string); ok {
		return token
	}
	return ""
}
