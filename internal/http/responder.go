package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/logging"
)

var (
	errBadRequestBody    = errors.New("invalid request body")
	errInvalidScheduleID = errors.New("invalid schedule id")
	errInvalidAttendeeID = errors.New("invalid attendee id")
	errInvalidMemberID   = errors.New("invalid member id")
	errInvalidPlaceID    = errors.New("invalid place id")
	errMissingPrincipal  = errors.New("caller identity header is required")
)

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError maps the application error taxonomy to HTTP statuses,
// surfacing the stable rule code so clients can render precise guidance.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	code := application.ErrorCode(err)

	switch {
	case errors.Is(err, application.ErrForbidden):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{ErrorCode: code, Message: err.Error()})
		return
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{ErrorCode: code, Message: err.Error()})
		return
	case errors.Is(err, application.ErrConflict):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{ErrorCode: code, Message: err.Error()})
		return
	}

	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "validation failed",
			Errors:  vErr.FieldErrors,
		})
		return
	}

	r.loggerFor(ctx).ErrorContext(ctx, "request failed", "error", err)
	r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := logging.FromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
