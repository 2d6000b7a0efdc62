package veo

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel        = "veo-3.0-generate-preview"
	defaultPollInterval = 5 * time.Second
	maxVideoBytes       = 64 << 20
)

var (
	errVeoTransient  = crerr.New("veo transient failure")
	errOperationFail = crerr.New("veo operation failed")
	errNoVideo       = crerr.New("veo operation returned no video")
	errVideoTooLarge = crerr.New("veo video exceeds size limit")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	PollInterval   time.Duration
	MaxWait        time.Duration
	MaxVideoBytes  int64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client generates short clips with the Veo long running predict API. The
// operation is polled until done and the clip is downloaded into a data URI.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	model        string
	pollInterval time.Duration
	maxWait      time.Duration
	maxVideo     int64
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("veo api key is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	maxWait := cfg.MaxWait
	if maxWait <= 0 {
		maxWait = 6 * time.Minute
	}
	maxVideo := cfg.MaxVideoBytes
	if maxVideo <= 0 {
		maxVideo = maxVideoBytes
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		model:        model,
		pollInterval: poll,
		maxWait:      maxWait,
		maxVideo:     maxVideo,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}, nil
}

type predictRequest struct {
	Instances []predictInstance `json:"instances"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type operation struct {
	Name  string `json:"name"`
	Done  bool   `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

func (c *Client) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	var uri string
	err := c.breaker.Execute(func() error {
		var err error
		uri, err = c.generate(ctx, prompt)
		return err
	}, isCircuitFailure)
	if err != nil {
		c.logger.WarnContext(ctx, "veo video generation failed", "model", c.model, "error", err)
		return "", err
	}
	return uri, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := sonic.Marshal(predictRequest{Instances: []predictInstance{{Prompt: prompt}}})
	if err != nil {
		return "", fmt.Errorf("encode predict request: %w", err)
	}

	var op operation
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/models/"+c.model+":predictLongRunning", body, &op); err != nil {
		return "", crerr.Wrap(err, "start video operation")
	}
	if op.Name == "" && !op.Done {
		return "", crerr.Wrap(errOperationFail, "operation name missing")
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for !op.Done {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
		name := op.Name
		op = operation{}
		if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+strings.TrimPrefix(name, "/"), nil, &op); err != nil {
			return "", crerr.Wrapf(err, "poll operation %s", name)
		}
		if op.Name == "" {
			op.Name = name
		}
	}

	if op.Error != nil {
		return "", crerr.Wrapf(errOperationFail, "code=%d message=%s", op.Error.Code, op.Error.Message)
	}
	if op.Response == nil || len(op.Response.GenerateVideoResponse.GeneratedSamples) == 0 ||
		op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI == "" {
		return "", errNoVideo
	}

	return c.download(ctx, op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI)
}

// download fetches the clip. The file URI needs the API key appended.
func (c *Client) download(ctx context.Context, fileURI string) (string, error) {
	sep := "?"
	if strings.Contains(fileURI, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURI+sep+"key="+url.QueryEscape(c.apiKey), nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download video: %s", errVeoTransient, c.redact(err.Error()))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(resp.StatusCode, "download video")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, c.maxVideo+1)); err != nil {
		return "", fmt.Errorf("%w: read video: %v", errVeoTransient, err)
	}
	if int64(buf.Len()) > c.maxVideo {
		return "", fmt.Errorf("%w: more than %d bytes", errVideoTooLarge, c.maxVideo)
	}

	mime := strings.TrimSpace(strings.Split(resp.Header.Get("Content-Type"), ";")[0])
	if mime == "" || mime == "application/octet-stream" {
		mime = "video/mp4"
	}
	return assistant.InlineMedia{MIMEType: mime, Data: buf.B}.DataURI(), nil
}

func (c *Client) doJSON(ctx context.Context, method, fullURL string, body []byte, target any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %s", errVeoTransient, c.redact(err.Error()))
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("%w: read response body: %v", errVeoTransient, readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, abbreviate(raw))
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode operation: %w", err)
	}
	return nil
}

func (c *Client) redact(value string) string {
	if c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func statusError(status int, detail string) error {
	if status == http.StatusTooManyRequests || status >= 500 {
		return fmt.Errorf("%w: provider status=%d %s", errVeoTransient, status, detail)
	}
	return fmt.Errorf("provider status=%d %s", status, detail)
}

func abbreviate(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 256 {
		return s[:256] + "..."
	}
	return s
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errVeoTransient) || stderrors.Is(err, context.DeadlineExceeded)
}
