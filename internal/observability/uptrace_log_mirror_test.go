package observability

import (
	"math"
	"strings"
	"testing"

	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
)

func TestSkipAccessLog(t *testing.T) {
	if !skipAccessLog("http request", []any{"path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !skipAccessLog("http request", []any{"method", "GET", "path", "/uploads/logo-1-crest.png"}) {
		t.Fatalf("expected static upload log to be skipped")
	}
	if skipAccessLog("http request", []any{"path", "/v1/players"}) {
		t.Fatalf("did not expect api request log to be skipped")
	}
	if skipAccessLog("profile upload failed", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"profile_id", "b7c1", "attempt", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "profile_id" || attrs[0].Value.AsString() != "b7c1" {
		t.Fatalf("unexpected profile_id attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestLogAttributes_RedactsSecrets(t *testing.T) {
	attrs := logAttributes([]any{"Password", "hunter2", "token", "eyJ..."})
	for _, attr := range attrs {
		if attr.Value.AsString() != logging.Redacted {
			t.Fatalf("expected %s to be redacted, got %q", attr.Key, attr.Value.AsString())
		}
	}
}

func TestLogValue_TruncatesDataURIs(t *testing.T) {
	v := logValue("data:image/png;base64,"+strings.Repeat("A", 4096), 0)
	if v.AsString() != "data:image/png;base64,..." {
		t.Fatalf("unexpected data uri value %q", v.AsString())
	}

	long := logValue(strings.Repeat("x", 2*maxLogStringLength), 0)
	if len(long.AsString()) != maxLogStringLength+3 {
		t.Fatalf("expected long string to be truncated, got %d bytes", len(long.AsString()))
	}
}

func TestLogValue_Map(t *testing.T) {
	v := logValue(map[string]any{
		"sport":     "Football",
		"completed": true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	items := v.AsMap()
	if len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestLogValue_NumericKinds(t *testing.T) {
	type score uint16
	if got := logValue(score(4), 0); got.AsInt64() != 4 {
		t.Fatalf("expected named uint to map to int64, got %v", got)
	}
	if got := logValue(uint64(math.MaxUint64), 0); got.AsString() != "18446744073709551615" {
		t.Fatalf("expected overflowing uint64 as string, got %v", got)
	}
	if got := logValue([]int{1, 2}, 0); len(got.AsSlice()) != 2 {
		t.Fatalf("expected slice value, got %v", got)
	}
}
