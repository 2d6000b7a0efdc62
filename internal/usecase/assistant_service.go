package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
)

type CheckVideoInput struct {
	VideoDataURI string
	Sport        string
}

type AchievementImageInput struct {
	Text string
	// ReferenceImage is an optional data URI of a photo of the player.
	ReferenceImage string
}

// AssistantService wraps the hosted generative models behind prompt templates.
// A nil model disables the operations that need it.
type AssistantService struct {
	text  assistant.TextModel
	image assistant.ImageModel
	video assistant.VideoModel
}

func NewAssistantService(text assistant.TextModel, image assistant.ImageModel, video assistant.VideoModel) *AssistantService {
	return &AssistantService{text: text, image: image, video: video}
}

func (s *AssistantService) Chat(ctx context.Context, query string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.Chat")
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.generateText(ctx, "chat", assistant.Prompt{Text: assistant.ChatPrompt(query)})
}

func (s *AssistantService) CheckVideo(ctx context.Context, input CheckVideoInput) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.CheckVideo")
	defer span.End()

	if strings.TrimSpace(input.Sport) == "" {
		return "", fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}
	video, err := parseMedia(input.VideoDataURI, "video/")
	if err != nil {
		return "", err
	}
	return s.generateText(ctx, "video check", assistant.Prompt{
		Text:  assistant.VideoCheckPrompt(input.Sport),
		Media: []assistant.InlineMedia{video},
	})
}

func (s *AssistantService) RecordingGuidance(ctx context.Context, input assistant.RecordingSetup) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.RecordingGuidance")
	defer span.End()

	if strings.TrimSpace(input.Sport) == "" || strings.TrimSpace(input.Skill) == "" {
		return "", fmt.Errorf("%w: sport and skill are required", ErrInvalidInput)
	}
	return s.generateText(ctx, "recording guidance", assistant.Prompt{Text: assistant.RecordingGuidancePrompt(input)})
}

// GenerateAchievementImage returns a data URI. A reference photo is first
// described by the text model and the description is folded into the image prompt.
func (s *AssistantService) GenerateAchievementImage(ctx context.Context, input AchievementImageInput) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.GenerateAchievementImage")
	defer span.End()

	if strings.TrimSpace(input.Text) == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if s.image == nil {
		return "", fmt.Errorf("%w: image model is not configured", ErrUpstreamFailure)
	}

	var notes string
	if strings.TrimSpace(input.ReferenceImage) != "" {
		reference, err := parseMedia(input.ReferenceImage, "image/")
		if err != nil {
			return "", err
		}
		notes, err = s.generateText(ctx, "describe reference", assistant.Prompt{
			Text:  assistant.ReferenceDescriptionPrompt,
			Media: []assistant.InlineMedia{reference},
		})
		if err != nil {
			return "", err
		}
	}

	uri, err := s.image.GenerateImage(ctx, assistant.AchievementImagePrompt(input.Text, notes))
	if err != nil {
		return "", fmt.Errorf("%w: generate image: %v", ErrUpstreamFailure, err)
	}
	return uri, nil
}

func (s *AssistantService) GenerateSportsVideo(ctx context.Context, prompt string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssistantService.GenerateSportsVideo")
	defer span.End()

	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	if s.video == nil {
		return "", fmt.Errorf("%w: video model is not configured", ErrUpstreamFailure)
	}

	uri, err := s.video.GenerateVideo(ctx, strings.TrimSpace(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: generate video: %v", ErrUpstreamFailure, err)
	}
	return uri, nil
}

func (s *AssistantService) generateText(ctx context.Context, op string, prompt assistant.Prompt) (string, error) {
	if s.text == nil {
		return "", fmt.Errorf("%w: text model is not configured", ErrUpstreamFailure)
	}
	out, err := s.text.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUpstreamFailure, op, err)
	}
	return strings.TrimSpace(out), nil
}

func parseMedia(uri, mimePrefix string) (assistant.InlineMedia, error) {
	m, err := assistant.ParseDataURI(uri)
	if err != nil {
		return assistant.InlineMedia{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !strings.HasPrefix(m.MIMEType, mimePrefix) {
		return assistant.InlineMedia{}, fmt.Errorf("%w: expected %s* media, got %s", ErrInvalidInput, mimePrefix, m.MIMEType)
	}
	return m, nil
}
