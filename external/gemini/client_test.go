package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	parts []genai.Part
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.parts = parts
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}}}
}

func TestClient_GenerateSendsMediaBeforeText(t *testing.T) {
	model := &fakeModel{resp: textResponse(genai.Text("Keep the camera "), genai.Text("at hip height."))}
	c := newWithModel(model, "test-model", ClientConfig{Logger: logging.NewNop()})

	out, err := c.Generate(context.Background(), assistant.Prompt{
		Text:  "check this clip",
		Media: []assistant.InlineMedia{{MIMEType: "video/mp4", Data: []byte{1, 2}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Keep the camera at hip height.", out)
	require.Len(t, model.parts, 2)
	assert.Equal(t, genai.Blob{MIMEType: "video/mp4", Data: []byte{1, 2}}, model.parts[0])
	assert.Equal(t, genai.Text("check this clip"), model.parts[1])
}

func TestClient_EmptyResponseIsError(t *testing.T) {
	c := newWithModel(&fakeModel{resp: textResponse()}, "test-model", ClientConfig{Logger: logging.NewNop()})

	_, err := c.Generate(context.Background(), assistant.Prompt{Text: "hi"})
	assert.ErrorIs(t, err, errEmptyResponse)
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	model := &fakeModel{err: errors.New("503 unavailable")}
	c := newWithModel(model, "test-model", ClientConfig{
		Logger: logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := c.Generate(context.Background(), assistant.Prompt{Text: "hi"})
		require.Error(t, err)
	}
	_, err := c.Generate(context.Background(), assistant.Prompt{Text: "hi"})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, 2, model.calls)
}

func TestClient_BlockedPromptDoesNotTripBreaker(t *testing.T) {
	model := &fakeModel{resp: &genai.GenerateContentResponse{
		PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
	}}
	c := newWithModel(model, "test-model", ClientConfig{
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1},
	})

	for i := 0; i < 3; i++ {
		_, err := c.Generate(context.Background(), assistant.Prompt{Text: "hi"})
		assert.ErrorIs(t, err, errBlocked)
	}
	assert.Equal(t, 3, model.calls)
}
