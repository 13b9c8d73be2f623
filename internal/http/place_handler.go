package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/persistence"
)

type placeService interface {
	Create(ctx context.Context, params application.CreatePlaceParams) (persistence.Place, error)
	List(ctx context.Context, page, pageSize int) (application.PlacePage, error)
}

// PlaceHandler exposes the place catalog.
type PlaceHandler struct {
	places    placeService
	responder responder
}

// NewPlaceHandler constructs the handler.
func NewPlaceHandler(places placeService, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{places: places, responder: newResponder(logger)}
}

type createPlaceRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type placeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Create handles POST /places.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	place, err := h.places.Create(r.Context(), application.CreatePlaceParams{
		Name:         req.Name,
		Address:      req.Address,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toPlaceResponse(place))
}

// List handles GET /places.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.places.List(r.Context(), queryInt(r, "page", 0), queryInt(r, "page_size", 20))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPlacePageResponse(page))
}

func toPlaceResponse(place persistence.Place) placeResponse {
	return placeResponse{
		ID:           place.ID,
		Name:         place.Name,
		Address:      place.Address,
		ThumbnailURL: place.ThumbnailURL,
	}
}

func toPlacePageResponse(page application.PlacePage) placePageResponse {
	items := make([]placeResponse, 0, len(page.Items))
	for _, place := range page.Items {
		items = append(items, toPlaceResponse(place))
	}
	return placePageResponse{
		Items:    items,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	}
}
