package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/assistant"
	"github.com/riskibarqy/talent-scout/internal/domain/media"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	"github.com/riskibarqy/talent-scout/internal/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "talent-scout"
)

// googleResponseEnvelope follows the Google JSON style guide: exactly one of
// data or error is set.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalMapping = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

func invalidArgument(reason string) mappedError {
	return mappedError{HTTPStatus: http.StatusBadRequest, Reason: reason, Status: "INVALID_ARGUMENT"}
}

// errorMappings is matched in order; the first entry whose target is in the
// error chain wins.
var errorMappings = []struct {
	targets []error
	mapped  mappedError
}{
	{[]error{profile.ErrInvalidEnum, account.ErrInvalidRole}, invalidArgument("invalidEnum")},
	{[]error{profile.ErrInvalidPayload}, invalidArgument("invalidPayload")},
	{[]error{media.ErrUnsupportedFile}, invalidArgument("unsupportedFile")},
	{[]error{usecase.ErrInvalidInput, assistant.ErrInvalidDataURI}, invalidArgument("invalidInput")},
	{[]error{usecase.ErrNotFound, profile.ErrNotFound}, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{usecase.ErrUnauthorized}, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{[]error{usecase.ErrForbidden}, mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{[]error{usecase.ErrConflict, profile.ErrRevisionConflict}, mappedError{http.StatusConflict, "conflict", "ABORTED"}},
	{[]error{usecase.ErrUpstreamFailure}, mappedError{http.StatusBadGateway, "upstreamFailure", "UNAVAILABLE"}},
}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errors.Is(err, target) {
				return m.mapped
			}
		}
	}
	return internalMapping
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
		if mapped.HTTPStatus >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, mapped.Reason)
		}
	}
	switch {
	case mapped == internalMapping:
		writeInternalError(ctx, w)
	case mapped.HTTPStatus >= http.StatusInternalServerError:
		writeFailure(w, mapped, "upstream service unavailable")
	default:
		writeFailure(w, mapped, err.Error())
	}
}

// writeInternalError hides the cause from the client.
func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeFailure(w, internalMapping, "internal server error")
}

func writeFailure(w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	})
}
