package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/media"
)

const DefaultPublicPrefix = "/uploads"

// Storage writes uploads to a directory that the HTTP server exposes under PublicPrefix.
type Storage struct {
	dir      string
	prefix   string
	maxBytes int64
	now      func() time.Time
}

func New(dir, publicPrefix string, maxBytes int64) (*Storage, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	publicPrefix = "/" + strings.Trim(strings.TrimSpace(publicPrefix), "/")
	if publicPrefix == "/" {
		publicPrefix = DefaultPublicPrefix
	}

	return &Storage{dir: dir, prefix: publicPrefix, maxBytes: maxBytes, now: time.Now}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) PublicPrefix() string {
	return s.prefix
}

func (s *Storage) Put(ctx context.Context, upload media.Upload) (string, error) {
	if err := media.ValidateExtension(upload.Filename); err != nil {
		return "", err
	}
	if upload.Body == nil {
		return "", fmt.Errorf("upload %s has no body", upload.Field)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := media.ObjectName(upload.Field, upload.Filename, s.now())
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", name, err)
	}

	body := upload.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(upload.Body, s.maxBytes+1)
	}
	written, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("write file %s: %w", name, copyErr)
	case closeErr != nil:
		_ = os.Remove(target)
		return "", fmt.Errorf("close file %s: %w", name, closeErr)
	case s.maxBytes > 0 && written > s.maxBytes:
		_ = os.Remove(target)
		return "", fmt.Errorf("upload %s exceeds %d bytes", upload.Field, s.maxBytes)
	}

	return path.Join(s.prefix, name), nil
}

// Delete removes a file previously returned by Put. Paths outside the public
// prefix are ignored and a missing file is not an error.
func (s *Storage) Delete(_ context.Context, publicPath string) error {
	name, ok := strings.CutPrefix(strings.TrimSpace(publicPath), s.prefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file %s: %w", name, err)
	}
	return nil
}
