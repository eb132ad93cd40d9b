package logs

import (
	"context"
	"crypto/rand"
)

// NewSpan derives a context carrying a new span. An empty parent defaults to
// the span already in ctx.
type NewSpan func(ctx context.Context, parent Span) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, parent Span) (context.Context, Span) {
		outer := SpanOf(ctx)
		if parent == "" {
			parent = outer
		}

		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)

		var args []any
		if outer != "" && outer != parent {
			args = append(args, "outer", outer)
		}
		if parent != "" {
			args = append(args, "parent", parent)
		}
		logger.DebugContext(ctx, "new span", args...)

		return ctx, span
	}
}
