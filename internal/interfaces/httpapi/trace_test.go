package httpapi

import (
	"context"
	"testing"

	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	ctx, span := startSpan(context.Background(), "GetLeaderboard")
	defer span.End()

	if span.SpanContext().IsValid() || span.IsRecording() {
		t.Fatalf("expected non-recording span without a parent")
	}
	if ctx != context.Background() {
		t.Fatalf("expected context to be returned unchanged")
	}
}

func TestStartSpan_ChildCarriesPrincipal(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	ctx, parent := provider.Tracer("test").Start(context.Background(), "GET /v1/me/profile")
	ctx = withPrincipal(ctx, account.Principal{AccountID: "acc-1", Role: account.RolePlayer})
	_, span := startSpan(ctx, "GetMyProfile")
	span.End()
	parent.End()

	ended := recorder.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}
	child := ended[0]
	if child.Name() != "httpapi.Handler.GetMyProfile" {
		t.Fatalf("unexpected span name %q", child.Name())
	}
	want := attribute.String("account.id", "acc-1")
	for _, attr := range child.Attributes() {
		if attr == want {
			return
		}
	}
	t.Fatalf("expected %v in %v", want, child.Attributes())
}
