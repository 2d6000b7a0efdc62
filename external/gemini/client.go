package gemini

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/generative-ai-go/genai"
	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash"

var (
	errEmptyResponse = crerr.New("gemini returned no text")
	errBlocked       = crerr.New("gemini blocked the prompt")
)

type ClientConfig struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	Temperature    float32
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client is a text and vision model backed by the Gemini API.
type Client struct {
	closeFn func() error
	model   contentGenerator
	name    string
	timeout time.Duration
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = defaultModel
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := gc.GenerativeModel(name)
	if cfg.Temperature > 0 {
		model.SetTemperature(cfg.Temperature)
	}

	c := newWithModel(model, name, cfg)
	c.closeFn = gc.Close
	return c, nil
}

func newWithModel(model contentGenerator, name string, cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		model:   model,
		name:    name,
		timeout: timeout,
		logger:  logger,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

func (c *Client) Close() error {
	if c.closeFn == nil {
		return nil
	}
	return c.closeFn()
}

func (c *Client) Generate(ctx context.Context, prompt assistant.Prompt) (string, error) {
	parts := make([]genai.Part, 0, len(prompt.Media)+1)
	for _, m := range prompt.Media {
		parts = append(parts, genai.Blob{MIMEType: m.MIMEType, Data: m.Data})
	}
	parts = append(parts, genai.Text(prompt.Text))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out string
	err := c.breaker.Execute(func() error {
		resp, err := c.model.GenerateContent(ctx, parts...)
		if err != nil {
			return crerr.Wrapf(err, "gemini generate model=%s", c.name)
		}
		out, err = responseText(resp)
		return err
	}, isCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "gemini circuit breaker rejected request", "state", c.breaker.State())
		} else {
			c.logger.WarnContext(ctx, "gemini request failed", "model", c.name, "error", err)
		}
		return "", err
	}
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", crerr.Wrapf(errBlocked, "reason=%s", resp.PromptFeedback.BlockReason)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", errEmptyResponse
	}
	return b.String(), nil
}

// Blocked prompts and caller cancellation say nothing about upstream health.
func isCircuitFailure(err error) bool {
	return !crerr.Is(err, errBlocked) && !stderrors.Is(err, context.Canceled)
}
