package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// PlaceService manages the place catalog consumed by itineraries.
type PlaceService struct {
	places      persistence.PlaceRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewPlaceService wires dependencies for catalog operations.
func NewPlaceService(places persistence.PlaceRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *PlaceService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &PlaceService{
		places:      places,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Create registers a place catalog entry.
func (s *PlaceService) Create(ctx context.Context, params CreatePlaceParams) (persistence.Place, error) {
	logger := serviceLogger(ctx, s.logger, "place", "create")

	if strings.TrimSpace(params.Name) == "" {
		vErr := &ValidationError{}
		vErr.add("name", "name is required")
		return persistence.Place{}, vErr
	}

	place := persistence.Place{
		ID:           s.idGenerator(),
		Name:         strings.TrimSpace(params.Name),
		Address:      params.Address,
		ThumbnailURL: params.ThumbnailURL,
		CreatedAt:    s.now(),
	}
	if err := s.places.CreatePlace(ctx, place); err != nil {
		return persistence.Place{}, fmt.Errorf("failed to create place: %w", err)
	}

	logger.InfoContext(ctx, "place registered", "place_id", place.ID)
	return place, nil
}

// Get retrieves a place by id.
func (s *PlaceService) Get(ctx context.Context, id string) (persistence.Place, error) {
	place, err := s.places.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Place{}, notFound(CodePlaceNotFound, "place not found")
		}
		return persistence.Place{}, fmt.Errorf("failed to resolve place: %w", err)
	}
	return place, nil
}

// List returns one page of the catalog with the total size.
func (s *PlaceService) List(ctx context.Context, page, pageSize int) (PlacePage, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page < 0 {
		page = 0
	}
	items, total, err := s.places.ListPlaces(ctx, page*pageSize, pageSize)
	if err != nil {
		return PlacePage{}, fmt.Errorf("failed to list places: %w", err)
	}
	return PlacePage{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}
