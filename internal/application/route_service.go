package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/travel-planner/internal/persistence"
)

// RouteService maintains the ordered place list per schedule. Appends
// preserve existing orders; full replacements renumber from 1.
type RouteService struct {
	routes      persistence.RouteRepository
	attendees   persistence.AttendeeRepository
	places      persistence.PlaceRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewRouteService wires dependencies for itinerary operations.
func NewRouteService(routes persistence.RouteRepository, attendees persistence.AttendeeRepository, places persistence.PlaceRepository, idGenerator func() string, logger *slog.Logger) *RouteService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &RouteService{
		routes:      routes,
		attendees:   attendees,
		places:      places,
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
	}
}

// AppendLast adds a place to the end of the itinerary. The next order value
// is computed from the current maximum inside the repository's transaction,
// so concurrent appends cannot collide. Existing entries are never
// renumbered.
func (s *RouteService) AppendLast(ctx context.Context, scheduleID, memberID, placeID string) (persistence.Route, error) {
	logger := serviceLogger(ctx, s.logger, "route", "append_last", "schedule_id", scheduleID)

	attendee, err := s.attendees.GetAttendeeByMember(ctx, scheduleID, memberID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Route{}, notFound(CodeAttendeeNotFound, "attendee not found")
		}
		return persistence.Route{}, fmt.Errorf("failed to resolve attendee: %w", err)
	}

	if err := requirePermission(attendee, persistence.PermissionEdit, CodeEditRequired, "edit permission required"); err != nil {
		return persistence.Route{}, err
	}

	if _, err := s.places.GetPlace(ctx, placeID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Route{}, notFound(CodePlaceNotFound, "place not found")
		}
		return persistence.Route{}, fmt.Errorf("failed to resolve place: %w", err)
	}

	route, err := s.routes.AppendRoute(ctx, persistence.Route{
		ID:         s.idGenerator(),
		ScheduleID: scheduleID,
		PlaceID:    placeID,
	})
	if err != nil {
		return persistence.Route{}, fmt.Errorf("failed to append route: %w", err)
	}

	logger.InfoContext(ctx, "route appended", "route_id", route.ID, "order", route.Order)
	return route, nil
}

// ReplaceAll builds the replacement itinerary for a schedule from the
// caller-supplied entries: every place is resolved up front (any missing
// place aborts the whole operation) and the result is renumbered strictly
// 1..N in the order the entries were supplied. Duplicate places are kept; an
// empty input yields an empty itinerary. Authorization is the caller's
// responsibility; the schedule lifecycle checks it before delegating here,
// and persists the result together with the schedule fields in one
// transaction.
func (s *RouteService) ReplaceAll(ctx context.Context, scheduleID string, inputs []RouteInput) ([]persistence.Route, error) {
	routes := make([]persistence.Route, 0, len(inputs))
	for i, input := range inputs {
		if _, err := s.places.GetPlace(ctx, input.PlaceID); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				return nil, notFound(CodePlaceNotFound, "place not found")
			}
			return nil, fmt.Errorf("failed to resolve place: %w", err)
		}
		routes = append(routes, persistence.Route{
			ID:         s.idGenerator(),
			ScheduleID: scheduleID,
			PlaceID:    input.PlaceID,
			Order:      i + 1,
		})
	}
	return routes, nil
}

// List returns the itinerary in stored order.
func (s *RouteService) List(ctx context.Context, scheduleID string) ([]persistence.Route, error) {
	routes, err := s.routes.ListRoutes(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}
