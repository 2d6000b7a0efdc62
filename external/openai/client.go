package openai

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	goopenai "github.com/sashabaranov/go-openai"
)

var errNoImage = crerr.New("openai returned no image")

type ClientConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Size           string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client generates images through the OpenAI images API.
type Client struct {
	api     *goopenai.Client
	model   string
	size    string
	timeout time.Duration
	logger  *logging.Logger
	breaker *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		apiCfg.BaseURL = base
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = goopenai.CreateImageModelDallE3
	}
	size := strings.TrimSpace(cfg.Size)
	if size == "" {
		size = goopenai.CreateImageSize1024x1024
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &Client{
		api:     goopenai.NewClientWithConfig(apiCfg),
		model:   model,
		size:    size,
		timeout: timeout,
		logger:  logger,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	uri, err := resilience.Call(c.breaker, func() (string, error) {
		resp, err := c.api.CreateImage(ctx, goopenai.ImageRequest{
			Prompt:         prompt,
			Model:          c.model,
			N:              1,
			Size:           c.size,
			ResponseFormat: goopenai.CreateImageResponseFormatB64JSON,
		})
		if err != nil {
			return "", crerr.Wrapf(err, "openai create image model=%s", c.model)
		}
		if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
			return "", errNoImage
		}
		raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
		if err != nil {
			return "", crerr.Wrap(err, "decode openai image")
		}
		return assistant.InlineMedia{MIMEType: "image/png", Data: raw}.DataURI(), nil
	}, isCircuitFailure)
	if err != nil {
		c.logger.WarnContext(ctx, "openai image request failed", "model", c.model, "error", err)
		return "", err
	}
	return uri, nil
}

// Client side rejections (bad prompt, policy) do not count against upstream health.
func isCircuitFailure(err error) bool {
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *goopenai.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	return true
}
