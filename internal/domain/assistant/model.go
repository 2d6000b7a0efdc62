package assistant

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// InlineMedia is binary content passed to or returned from a model.
type InlineMedia struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI decodes a base64 data URI of the form data:<mime>;base64,<payload>.
func ParseDataURI(uri string) (InlineMedia, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return InlineMedia{}, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return InlineMedia{}, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return InlineMedia{}, fmt.Errorf("%w: payload must be base64 encoded", ErrInvalidDataURI)
	}
	mime = strings.TrimSpace(mime)
	if mime == "" || !strings.Contains(mime, "/") {
		return InlineMedia{}, fmt.Errorf("%w: mime type is required", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return InlineMedia{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return InlineMedia{}, fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}
	return InlineMedia{MIMEType: mime, Data: data}, nil
}

// DataURI is the inverse of ParseDataURI.
func (m InlineMedia) DataURI() string {
	return "data:" + m.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}

// Prompt is a text instruction with optional inline attachments.
type Prompt struct {
	Text  string
	Media []InlineMedia
}

type TextModel interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// ImageModel returns the generated image as a data URI.
type ImageModel interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// VideoModel returns the generated clip as a data URI.
type VideoModel interface {
	GenerateVideo(ctx context.Context, prompt string) (string, error)
}
