package middleware

import (
	"context"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyIsHTMX    ctxKey = "is_htmx"
	ctxKeySession   ctxKey = "session"
	ctxKeyLocaleFB  ctxKey = "locale_fallback"
	ctxKeyHTMXState ctxKey = "htmx_state"
)

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// HTMXInfo carries the htmx request headers handlers care about.
type HTMXInfo struct {
	Trigger     string
	TriggerName string
	Target      string
	Boosted     bool
}

// HTMXFromContext returns the htmx request headers captured by HTMX.
func HTMXFromContext(ctx context.Context) HTMXInfo {
	v, _ := ctx.Value(ctxKeyHTMXState).(HTMXInfo)
	return v
}

func contextWithHTMXInfo(ctx context.Context, info HTMXInfo) context.Context {
	return context.WithValue(ctx, ctxKeyHTMXState, info)
}
