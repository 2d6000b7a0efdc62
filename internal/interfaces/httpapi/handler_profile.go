package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/talent-scout/internal/usecase"
)

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "GetMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	item, err := h.profileService.GetMine(ctx, principal, r.PathValue("kind"))
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "account_id", principal.AccountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "UpdateMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	kind := r.PathValue("kind")
	patch, uploads, cleanup, err := h.decodeProfileUpdate(ctx, w, r, kind)
	defer cleanup()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profileService.UpdateMine(ctx, principal, usecase.UpdateProfileInput{
		Kind:    kind,
		Patch:   patch,
		Uploads: uploads,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed",
			"account_id", principal.AccountID,
			"kind", kind,
			"uploads", len(uploads),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) DeleteMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "DeleteMyProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := h.profileService.DeleteMine(ctx, principal, r.PathValue("kind")); err != nil {
		h.logger.WarnContext(ctx, "delete profile failed", "account_id", principal.AccountID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "account deleted", "account_id", principal.AccountID)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"message": "profile and account deleted"})
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "ListClubs")
	defer span.End()

	clubs, err := h.profileService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "ListPlayers")
	defer span.End()

	query := r.URL.Query()
	completedOnly := false
	if raw := strings.TrimSpace(query.Get("completed")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: completed must be a boolean", usecase.ErrInvalidInput))
			return
		}
		completedOnly = parsed
	}

	players, err := h.profileService.ListPlayers(ctx, usecase.ListPlayersInput{
		Sport:         query.Get("sport"),
		CompletedOnly: completedOnly,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "sport", query.Get("sport"), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
