package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/talent-scout/internal/platform/logging"
	"github.com/riskibarqy/talent-scout/internal/usecase"
)

const (
	defaultMaxUploadBytes = 10 << 20
	maxJSONBodyBytes      = 32 << 20
)

type Handler struct {
	authService        *usecase.AuthService
	profileService     *usecase.ProfileService
	leaderboardService *usecase.LeaderboardService
	assistantService   *usecase.AssistantService
	logger             *logging.Logger
	validator          *validator.Validate
	maxUploadBytes     int64
}

func NewHandler(
	authService *usecase.AuthService,
	profileService *usecase.ProfileService,
	leaderboardService *usecase.LeaderboardService,
	assistantService *usecase.AssistantService,
	logger *logging.Logger,
	maxUploadBytes int64,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	return &Handler{
		authService:        authService,
		profileService:     profileService,
		leaderboardService: leaderboardService,
		assistantService:   assistantService,
		logger:             logger,
		validator:          validator.New(),
		maxUploadBytes:     maxUploadBytes,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a strict JSON body and validates it.
func (h *Handler) decodeJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is empty", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, target)
}
