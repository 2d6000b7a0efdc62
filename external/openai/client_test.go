package openai

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GenerateImageReturnsDataURI(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/images/generations" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"created":1,"data":[{"b64_json":"`+base64.StdEncoding.EncodeToString(png)+`"}]}`)
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1", Logger: logging.NewNop()})
	require.NoError(t, err)

	uri, err := c.GenerateImage(context.Background(), "a golden boot on a podium")
	require.NoError(t, err)

	media, err := assistant.ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", media.MIMEType)
	assert.Equal(t, png, media.Data)
	assert.True(t, strings.Contains(gotBody, `"response_format":"b64_json"`), gotBody)
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"prompt rejected","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL + "/v1",
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.GenerateImage(context.Background(), "x")
		require.Error(t, err)
	}
	assert.Equal(t, 3, calls)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)
}
