package httpapi

import (
	"net/http"

	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/usecase"
)

type chatRequest struct {
	Query string `json:"query" validate:"required,max=4000"`
}

type videoCheckRequest struct {
	VideoDataURI string `json:"videoDataUri" validate:"required"`
	Sport        string `json:"sport" validate:"required,max=60"`
}

type recordingGuidanceRequest struct {
	Sport            string `json:"sport" validate:"required,max=60"`
	Skill            string `json:"skill" validate:"required,max=120"`
	CameraAngle      string `json:"cameraAngle" validate:"max=120"`
	PlayerVisibility string `json:"playerVisibility" validate:"max=120"`
}

type achievementImageRequest struct {
	Text  string `json:"text" validate:"required,max=4000"`
	Image string `json:"image"`
}

type sportsVideoRequest struct {
	Prompt string `json:"prompt" validate:"required,max=2000"`
}

type textResponse struct {
	Text string `json:"text"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type videoResponse struct {
	VideoURL string `json:"videoUrl"`
}

func (h *Handler) AssistantChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "AssistantChat")
	defer span.End()

	var req chatRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	answer, err := h.assistantService.Chat(ctx, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "assistant chat failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, textResponse{Text: answer})
}

func (h *Handler) AssistantVideoCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "AssistantVideoCheck")
	defer span.End()

	var req videoCheckRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	feedback, err := h.assistantService.CheckVideo(ctx, usecase.CheckVideoInput{
		VideoDataURI: req.VideoDataURI,
		Sport:        req.Sport,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assistant video check failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, textResponse{Text: feedback})
}

func (h *Handler) AssistantRecordingGuidance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "AssistantRecordingGuidance")
	defer span.End()

	var req recordingGuidanceRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	guidance, err := h.assistantService.RecordingGuidance(ctx, assistant.RecordingSetup{
		Sport:            req.Sport,
		Skill:            req.Skill,
		CameraAngle:      req.CameraAngle,
		PlayerVisibility: req.PlayerVisibility,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assistant recording guidance failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, textResponse{Text: guidance})
}

func (h *Handler) AssistantAchievementImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "AssistantAchievementImage")
	defer span.End()

	var req achievementImageRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	uri, err := h.assistantService.GenerateAchievementImage(ctx, usecase.AchievementImageInput{
		Text:           req.Text,
		ReferenceImage: req.Image,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assistant achievement image failed", "with_reference", req.Image != "", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, imageResponse{ImageURL: uri})
}

func (h *Handler) AssistantSportsVideo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "AssistantSportsVideo")
	defer span.End()

	var req sportsVideoRequest
	if err := h.decodeJSON(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	uri, err := h.assistantService.GenerateSportsVideo(ctx, req.Prompt)
	if err != nil {
		h.logger.WarnContext(ctx, "assistant sports video failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, videoResponse{VideoURL: uri})
}
