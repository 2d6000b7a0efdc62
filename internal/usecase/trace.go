package usecase

import (
	"context"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "talent-scout/internal/usecase"

// startUsecaseSpan only opens a span under an existing request span, so
// scheduler jobs and tests run untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

func profileAttrs(p account.Principal, kind string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("profile.kind", kind),
		attribute.String("profile.id", p.ProfileID),
	}
}
