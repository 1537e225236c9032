package core

import "context"

// Context keys for run options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	skipHistoryKey    contextKey = "skipHistory"
)

// withSuppressHeader sets whether headers should be suppressed in the context
func withSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// WithSuppressHeader returns a context whose runs print no header.
func WithSuppressHeader(ctx context.Context) context.Context {
	return withSuppressHeader(ctx)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withSkipHistory marks the run as not tracked in run history
func withSkipHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipHistoryKey, true)
}

// shouldSkipHistory returns whether run history tracking is disabled from context
func shouldSkipHistory(ctx context.Context) bool {
	val := ctx.Value(skipHistoryKey)
	if val == nil {
		return false // default: track runs
	}
	skip, ok := val.(bool)
	return ok && skip
}

// QuietContext returns a context for embedded callers: no header and no run history.
func QuietContext(ctx context.Context) context.Context {
	return withSkipHistory(withSuppressHeader(ctx))
}
