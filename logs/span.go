package logs

import (
	"context"
	"errors"
	"fmt"
)

type Span string

type spanKey struct{}

// SpanKey is the context key of the current span.
var SpanKey = spanKey{}

// SpanOf returns the span carried by ctx, empty if none.
func SpanOf(ctx context.Context) Span {
	if v, ok := ctx.Value(SpanKey).(Span); ok {
		return v
	}
	return ""
}

// WrapSpan annotates err with the span of ctx, if any.
func WrapSpan(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	span := SpanOf(ctx)
	if span == "" {
		return err
	}
	return errors.Join(err, fmt.Errorf("span: %s", span))
}
