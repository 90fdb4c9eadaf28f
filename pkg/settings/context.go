package settings

import (
	"context"
)

type runContextKey struct{}

// IntoContext attaches the run settings to ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, s)
}

// FromContext returns the run settings attached to ctx, if any.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey{}).(*Run)
	return s, ok && s != nil
}

// FromContextOrDefault returns the attached settings or fresh defaults.
func FromContextOrDefault(ctx context.Context) *Run {
	if s, ok := FromContext(ctx); ok {
		return s
	}
	return NewCliParams()
}
