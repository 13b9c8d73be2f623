package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/travel-planner/internal/persistence"
)

// RouteRepository implements persistence.RouteRepository using SQLite.
type RouteRepository struct {
	pool *ConnectionPool
}

// NewRouteRepository creates a SQLite-backed route repository.
func NewRouteRepository(pool *ConnectionPool) *RouteRepository {
	return &RouteRepository{pool: pool}
}

// AppendRoute reads the current maximum order and inserts the new stop at
// max+1 inside one transaction. The route's Order field on input is ignored.
func (r *RouteRepository) AppendRoute(ctx context.Context, route persistence.Route) (persistence.Route, error) {
	if route.ID == "" {
		return persistence.Route{}, persistence.ErrConstraintViolation
	}

	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var maxOrder int
		err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(route_order), 0) FROM routes WHERE schedule_id = ?",
			route.ScheduleID).Scan(&maxOrder)
		if err != nil {
			return mapError(err)
		}
		route.Order = maxOrder + 1

		_, err = tx.ExecContext(ctx, `
			INSERT INTO routes (id, schedule_id, place_id, route_order)
			VALUES (?, ?, ?, ?)`,
			route.ID, route.ScheduleID, route.PlaceID, route.Order)
		return mapError(err)
	})
	if err != nil {
		return persistence.Route{}, err
	}
	return route, nil
}

// ListRoutes returns the itinerary for a schedule in stored order.
func (r *RouteRepository) ListRoutes(ctx context.Context, scheduleID string) ([]persistence.Route, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT id, schedule_id, place_id, route_order
		FROM routes WHERE schedule_id = ? ORDER BY route_order`, scheduleID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var routes []persistence.Route
	for rows.Next() {
		var route persistence.Route
		if err := rows.Scan(&route.ID, &route.ScheduleID, &route.PlaceID, &route.Order); err != nil {
			return nil, mapError(err)
		}
		routes = append(routes, route)
	}
	return routes, mapError(rows.Err())
}
