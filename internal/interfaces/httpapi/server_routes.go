package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/signup", handler.Signup)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/profile/{kind}/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	mux.Handle("PUT /v1/profile/{kind}/me", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyProfile)))
	mux.Handle("DELETE /v1/profile/{kind}/me", RequireAuth(verifier, http.HandlerFunc(handler.DeleteMyProfile)))
}

func registerAuthorizedAssistantRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/assistant/chat", RequireAuth(verifier, http.HandlerFunc(handler.AssistantChat)))
	mux.Handle("POST /v1/assistant/video-check", RequireAuth(verifier, http.HandlerFunc(handler.AssistantVideoCheck)))
	mux.Handle("POST /v1/assistant/recording-guidance", RequireAuth(verifier, http.HandlerFunc(handler.AssistantRecordingGuidance)))
	mux.Handle("POST /v1/assistant/achievement-image", RequireAuth(verifier, http.HandlerFunc(handler.AssistantAchievementImage)))
	mux.Handle("POST /v1/assistant/sports-video", RequireAuth(verifier, http.HandlerFunc(handler.AssistantSportsVideo)))
}

// registerUploadRoutes serves locally stored files. dir is empty when uploads live elsewhere.
func registerUploadRoutes(mux *http.ServeMux, prefix, dir string) {
	if dir == "" {
		return
	}
	prefix = uploadRoute(prefix)
	mux.Handle("GET "+prefix, http.StripPrefix(prefix, noDirListing(http.FileServer(http.Dir(dir)))))
}
