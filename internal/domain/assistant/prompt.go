package assistant

import (
	"fmt"
	"strings"
)

func ChatPrompt(query string) string {
	return "You are a helpful AI chatbot designed to answer questions from players and club representatives related to a sports talent platform.\n" +
		"Your goal is to provide informative and concise responses to their queries.\n\n" +
		"User Query: " + strings.TrimSpace(query) + "\n"
}

func VideoCheckPrompt(sport string) string {
	return "You are an expert sports analyst. You will analyze the video of the player performing the sport and determine if the angles and timings are correct.\n\n" +
		"Sport: " + strings.TrimSpace(sport) + "\n\nAnalysis:"
}

type RecordingSetup struct {
	Sport            string
	Skill            string
	CameraAngle      string
	PlayerVisibility string
}

func RecordingGuidancePrompt(in RecordingSetup) string {
	var b strings.Builder
	b.WriteString("You are an expert AI video recording guidance system for sports.\n")
	b.WriteString("You will provide guidance to a player to improve their video recording based on the sport, skill, camera angle, and player visibility.\n\n")
	fmt.Fprintf(&b, "Sport: %s\n", strings.TrimSpace(in.Sport))
	fmt.Fprintf(&b, "Skill: %s\n", strings.TrimSpace(in.Skill))
	fmt.Fprintf(&b, "Camera Angle: %s\n", strings.TrimSpace(in.CameraAngle))
	fmt.Fprintf(&b, "Player Visibility: %s\n\n", strings.TrimSpace(in.PlayerVisibility))
	b.WriteString("Provide specific guidance to the player to improve their video recording, for example, adjust camera angle, improve player visibility, etc.\n")
	return b.String()
}

// AchievementImagePrompt describes the artwork for a player's achievements.
// referenceNotes, when set, is a description of a reference photo to draw from.
func AchievementImagePrompt(achievements, referenceNotes string) string {
	prompt := fmt.Sprintf(
		"Generate a symbolic and artistic image that represents the following player achievements: %q. The image should be abstract and visually compelling, suitable for a player profile.",
		strings.TrimSpace(achievements),
	)
	if notes := strings.TrimSpace(referenceNotes); notes != "" {
		prompt += " Draw visual cues from this reference photo description: " + notes
	}
	return prompt
}

const ReferenceDescriptionPrompt = "Describe the person in this photo for an illustrator in two sentences: build, kit colours and pose. Do not guess their identity."
