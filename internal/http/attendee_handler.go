package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/persistence"
)

type attendeeService interface {
	Invite(ctx context.Context, params application.InviteAttendeeParams) (persistence.Attendee, error)
	UpdatePermission(ctx context.Context, params application.UpdateAttendeePermissionParams) error
	Leave(ctx context.Context, scheduleID, memberID string) error
	Remove(ctx context.Context, params application.RemoveAttendeeParams) error
	List(ctx context.Context, scheduleID string) ([]persistence.Attendee, error)
}

// AttendeeHandler exposes roster endpoints nested under a schedule.
type AttendeeHandler struct {
	attendees attendeeService
	responder responder
}

// NewAttendeeHandler constructs the handler.
func NewAttendeeHandler(attendees attendeeService, logger *slog.Logger) *AttendeeHandler {
	return &AttendeeHandler{attendees: attendees, responder: newResponder(logger)}
}

type inviteRequest struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

type permissionRequest struct {
	Permission string `json:"permission"`
}

type attendeeResponse struct {
	ID         string    `json:"id"`
	ScheduleID string    `json:"schedule_id"`
	MemberID   string    `json:"member_id"`
	Role       string    `json:"role"`
	Permission string    `json:"permission"`
	JoinedAt   time.Time `json:"joined_at"`
}

// Invite handles POST /schedules/{scheduleID}/attendees.
func (h *AttendeeHandler) Invite(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	attendee, err := h.attendees.Invite(r.Context(), application.InviteAttendeeParams{
		ScheduleID:        scheduleID,
		RequesterMemberID: principal.MemberID,
		InviteeEmail:      req.Email,
		Permission:        persistence.Permission(req.Permission),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toAttendeeResponse(attendee))
}

// List handles GET /schedules/{scheduleID}/attendees.
func (h *AttendeeHandler) List(w http.ResponseWriter, r *http.Request) {
	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	attendees, err := h.attendees.List(r.Context(), scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]attendeeResponse, 0, len(attendees))
	for _, attendee := range attendees {
		out = append(out, toAttendeeResponse(attendee))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}

// UpdatePermission handles PATCH /schedules/{scheduleID}/attendees/{attendeeID}.
func (h *AttendeeHandler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	attendeeID := strings.TrimSpace(chi.URLParam(r, "attendeeID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}
	if attendeeID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAttendeeID)
		return
	}

	var req permissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	err := h.attendees.UpdatePermission(r.Context(), application.UpdateAttendeePermissionParams{
		ScheduleID:        scheduleID,
		RequesterMemberID: principal.MemberID,
		AttendeeID:        attendeeID,
		Permission:        persistence.Permission(req.Permission),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Leave handles DELETE /schedules/{scheduleID}/attendees.
func (h *AttendeeHandler) Leave(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	if err := h.attendees.Leave(r.Context(), scheduleID, principal.MemberID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Remove handles DELETE /schedules/{scheduleID}/attendees/{attendeeID}.
func (h *AttendeeHandler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	attendeeID := strings.TrimSpace(chi.URLParam(r, "attendeeID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}
	if attendeeID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAttendeeID)
		return
	}

	err := h.attendees.Remove(r.Context(), application.RemoveAttendeeParams{
		ScheduleID:        scheduleID,
		RequesterMemberID: principal.MemberID,
		AttendeeID:        attendeeID,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AttendeeHandler) requirePrincipal(w http.ResponseWriter, r *http.Request) (Principal, bool) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || principal.MemberID == "" {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingPrincipal)
		return Principal{}, false
	}
	return principal, true
}

func toAttendeeResponse(attendee persistence.Attendee) attendeeResponse {
	return attendeeResponse{
		ID:         attendee.ID,
		ScheduleID: attendee.ScheduleID,
		MemberID:   attendee.MemberID,
		Role:       string(attendee.Role),
		Permission: string(attendee.Permission),
		JoinedAt:   attendee.CreatedAt,
	}
}
