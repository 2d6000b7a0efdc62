package assistant

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDataURI(t *testing.T) {
	media, err := ParseDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("parse data uri: %v", err)
	}
	if media.MIMEType != "image/png" || string(media.Data) != "hello" {
		t.Fatalf("unexpected media: %+v", media)
	}
	if media.DataURI() != "data:image/png;base64,aGVsbG8=" {
		t.Fatalf("unexpected round trip: %s", media.DataURI())
	}

	invalid := []string{
		"",
		"image/png;base64,aGVsbG8=",
		"data:image/png,hello",
		"data:;base64,aGVsbG8=",
		"data:image/png;base64,***",
		"data:image/png;base64,",
	}
	for _, uri := range invalid {
		if _, err := ParseDataURI(uri); !errors.Is(err, ErrInvalidDataURI) {
			t.Fatalf("expected ErrInvalidDataURI for %q, got %v", uri, err)
		}
	}
}

func TestPrompts(t *testing.T) {
	if p := ChatPrompt("  how do I get scouted? "); !strings.Contains(p, "User Query: how do I get scouted?") {
		t.Fatalf("chat prompt missing query: %s", p)
	}
	if p := VideoCheckPrompt("Cricket"); !strings.HasSuffix(p, "Sport: Cricket\n\nAnalysis:") {
		t.Fatalf("unexpected video check prompt: %s", p)
	}
	p := RecordingGuidancePrompt(RecordingSetup{Sport: "Football", Skill: "Free kick", CameraAngle: "side", PlayerVisibility: "partial"})
	for _, want := range []string{"Sport: Football", "Skill: Free kick", "Camera Angle: side", "Player Visibility: partial"} {
		if !strings.Contains(p, want) {
			t.Fatalf("guidance prompt missing %q", want)
		}
	}
	if p := AchievementImagePrompt("U19 champion", ""); strings.Contains(p, "reference photo") {
		t.Fatalf("unexpected reference clause without notes")
	}
	if p := AchievementImagePrompt("U19 champion", "tall, red kit"); !strings.Contains(p, "tall, red kit") {
		t.Fatalf("expected reference notes in prompt")
	}
}
