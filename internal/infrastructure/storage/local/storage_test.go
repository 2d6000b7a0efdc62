package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/talent-scout/internal/domain/media"
)

func newTestStorage(t *testing.T, maxBytes int64) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), "/uploads", maxBytes)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestStorage_PutAndDelete(t *testing.T) {
	s := newTestStorage(t, 0)

	got, err := s.Put(context.Background(), media.Upload{
		Field:    "logo",
		Filename: "Club Crest.PNG",
		Body:     strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if got != "/uploads/logo-1700000000000-club-crest.png" {
		t.Fatalf("unexpected public path: %s", got)
	}

	onDisk := filepath.Join(s.Dir(), "logo-1700000000000-club-crest.png")
	content, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(content) != "png-bytes" {
		t.Fatalf("unexpected content: %q", content)
	}

	if err := s.Delete(context.Background(), got); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, stat err=%v", err)
	}
	if err := s.Delete(context.Background(), got); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestStorage_RejectsUnsupportedAndOversized(t *testing.T) {
	s := newTestStorage(t, 4)

	_, err := s.Put(context.Background(), media.Upload{Field: "logo", Filename: "run.exe", Body: strings.NewReader("x")})
	if !errors.Is(err, media.ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}

	if _, err := s.Put(context.Background(), media.Upload{Field: "logo", Filename: "big.png", Body: strings.NewReader("too-large")}); err == nil {
		t.Fatalf("expected size error")
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Fatalf("expected oversized file to be cleaned up, found %d entries", len(entries))
	}
}

func TestStorage_DeleteIgnoresForeignPaths(t *testing.T) {
	s := newTestStorage(t, 0)
	outside := filepath.Join(t.TempDir(), "keep.png")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, p := range []string{"", "https://cdn.example/logo.png", "/uploads/../keep.png", outside} {
		if err := s.Delete(context.Background(), p); err != nil {
			t.Fatalf("delete %q: %v", p, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("foreign file must survive: %v", err)
	}
}
