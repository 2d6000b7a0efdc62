package httpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

const tracerName = "talent-scout/internal/interfaces/httpapi"

// startSpan opens a child span for a handler operation. Requests the
// tracing middleware filtered out (health checks, static uploads) carry no
// parent and get the parent's non-recording span back.
func startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, handlerSpanPrefix+op)
	if p, ok := principalFromContext(ctx); ok {
		span.SetAttributes(
			attribute.String("account.id", p.AccountID),
			attribute.String("account.role", string(p.Role)),
		)
	}
	return ctx, span
}
