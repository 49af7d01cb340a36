package settings

import (
	"context"
)

type runKey struct{}

// IntoContext returns a copy of ctx carrying the run settings.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run settings stored in ctx. It reports false when
// ctx carries none.
func FromContext(ctx context.Context) (*Run, bool) {
	if ctx == nil {
		return nil, false
	}
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok && r != nil
}

// RunFromContext returns the run settings stored in ctx, or the defaults of
// a CLI run.
func RunFromContext(ctx context.Context) *Run {
	if r, ok := FromContext(ctx); ok {
		return r
	}
	return NewCliParams()
}
