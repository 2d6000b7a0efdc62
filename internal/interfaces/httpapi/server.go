package httpapi

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/riskibarqy/talent-scout/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	UploadPrefix       string
	UploadDir          string
}

func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerAuthRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedAssistantRoutes(mux, handler, verifier)
	registerUploadRoutes(mux, cfg.UploadPrefix, cfg.UploadDir)

	servedPrefix := ""
	if cfg.UploadDir != "" {
		servedPrefix = uploadRoute(cfg.UploadPrefix)
	}
	return RequestTracing(servedPrefix, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}

// noDirListing answers 404 for directory paths instead of rendering an index.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// uploadRoute is the mux prefix local uploads are served under.
func uploadRoute(prefix string) string {
	return "/" + trimSlashes(prefix) + "/"
}

func trimSlashes(v string) string {
	v = strings.Trim(strings.TrimSpace(v), "/")
	if v == "" {
		return "uploads"
	}
	return v
}
