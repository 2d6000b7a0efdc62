package media

import (
	"errors"
	"testing"
	"time"
)

func TestValidateExtension(t *testing.T) {
	for _, name := range []string{"logo.PNG", "cv.docx", "a.b.jpeg", "scan.pdf"} {
		if err := ValidateExtension(name); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", name, err)
		}
	}
	for _, name := range []string{"run.exe", "noext", "clip.mp4", ""} {
		if err := ValidateExtension(name); !errors.Is(err, ErrUnsupportedFile) {
			t.Fatalf("expected %q to be rejected, got %v", name, err)
		}
	}
}

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	got := ObjectName("achievementsImage", "../My Trophy Pic.JPG", now)
	if got != "achievementsimage-1700000000123-my-trophy-pic.jpg" {
		t.Fatalf("unexpected object name: %s", got)
	}

	got = ObjectName("", ".png", now)
	if got != "upload-1700000000123-file.png" {
		t.Fatalf("unexpected fallback object name: %s", got)
	}
}
