package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/persistence"
)

type scheduleService interface {
	Create(ctx context.Context, params application.CreateScheduleParams) (persistence.Schedule, error)
	GetDetail(ctx context.Context, params application.GetScheduleDetailParams) (application.ScheduleDetail, error)
	Update(ctx context.Context, params application.UpdateScheduleParams) (persistence.Schedule, error)
	Delete(ctx context.Context, scheduleID, memberID string) error
	ListForMember(ctx context.Context, memberID string) ([]persistence.Schedule, error)
}

type routeService interface {
	AppendLast(ctx context.Context, scheduleID, memberID, placeID string) (persistence.Route, error)
}

// ScheduleHandler exposes schedule lifecycle and itinerary endpoints.
type ScheduleHandler struct {
	schedules scheduleService
	routes    routeService
	responder responder
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedules scheduleService, routes routeService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, routes: routes, responder: newResponder(logger)}
}

type scheduleRequest struct {
	Name      string         `json:"name"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Routes    []routeRequest `json:"routes"`
}

type routeRequest struct {
	Order   int    `json:"order"`
	PlaceID string `json:"place_id"`
}

type appendRouteRequest struct {
	PlaceID string `json:"place_id"`
}

type scheduleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type routeResponse struct {
	ID      string `json:"id"`
	PlaceID string `json:"place_id"`
	Order   int    `json:"order"`
}

type scheduleDetailResponse struct {
	Schedule scheduleResponse  `json:"schedule"`
	Routes   []routeResponse   `json:"routes"`
	Places   placePageResponse `json:"places"`
}

type placePageResponse struct {
	Items    []placeResponse `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Total    int             `json:"total"`
}

// Create handles POST /schedules.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	schedule, err := h.schedules.Create(r.Context(), application.CreateScheduleParams{
		CreatorMemberID: principal.MemberID,
		Name:            req.Name,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toScheduleResponse(schedule))
}

// List handles GET /schedules.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	schedules, err := h.schedules.ListForMember(r.Context(), principal.MemberID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]scheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		out = append(out, toScheduleResponse(schedule))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}

// GetDetail handles GET /schedules/{scheduleID}.
func (h *ScheduleHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	detail, err := h.schedules.GetDetail(r.Context(), application.GetScheduleDetailParams{
		ScheduleID: scheduleID,
		Page:       queryInt(r, "page", 0),
		PageSize:   queryInt(r, "page_size", 20),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	routes := make([]routeResponse, 0, len(detail.Routes))
	for _, route := range detail.Routes {
		routes = append(routes, routeResponse{ID: route.ID, PlaceID: route.PlaceID, Order: route.Order})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleDetailResponse{
		Schedule: toScheduleResponse(detail.Schedule),
		Routes:   routes,
		Places:   toPlacePageResponse(detail.Places),
	})
}

// Update handles PUT /schedules/{scheduleID}.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	routes := make([]application.RouteInput, 0, len(req.Routes))
	for _, route := range req.Routes {
		routes = append(routes, application.RouteInput{Order: route.Order, PlaceID: route.PlaceID})
	}

	schedule, err := h.schedules.Update(r.Context(), application.UpdateScheduleParams{
		ScheduleID: scheduleID,
		MemberID:   principal.MemberID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Routes:     routes,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toScheduleResponse(schedule))
}

// Delete handles DELETE /schedules/{scheduleID}.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	if err := h.schedules.Delete(r.Context(), scheduleID, principal.MemberID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// AppendRoute handles POST /schedules/{scheduleID}/routes.
func (h *ScheduleHandler) AppendRoute(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.requirePrincipal(w, r)
	if !ok {
		return
	}

	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	var req appendRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}
	if strings.TrimSpace(req.PlaceID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPlaceID)
		return
	}

	route, err := h.routes.AppendLast(r.Context(), scheduleID, principal.MemberID, req.PlaceID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, routeResponse{
		ID:      route.ID,
		PlaceID: route.PlaceID,
		Order:   route.Order,
	})
}

func (h *ScheduleHandler) requirePrincipal(w http.ResponseWriter, r *http.Request) (Principal, bool) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || principal.MemberID == "" {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingPrincipal)
		return Principal{}, false
	}
	return principal, true
}

func toScheduleResponse(schedule persistence.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        schedule.ID,
		Name:      schedule.Name,
		StartDate: schedule.StartDate,
		EndDate:   schedule.EndDate,
		CreatedAt: schedule.CreatedAt,
		UpdatedAt: schedule.UpdatedAt,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
