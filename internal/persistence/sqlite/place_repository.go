package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// PlaceRepository implements persistence.PlaceRepository using SQLite.
type PlaceRepository struct {
	pool *ConnectionPool
}

// NewPlaceRepository creates a SQLite-backed place repository.
func NewPlaceRepository(pool *ConnectionPool) *PlaceRepository {
	return &PlaceRepository{pool: pool}
}

// CreatePlace inserts a new place catalog entry.
func (r *PlaceRepository) CreatePlace(ctx context.Context, place persistence.Place) error {
	if place.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO places (id, name, address, thumbnail_url, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		place.ID,
		place.Name,
		place.Address,
		place.ThumbnailURL,
		place.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return mapError(err)
}

// GetPlace retrieves a place by id.
func (r *PlaceRepository) GetPlace(ctx context.Context, id string) (persistence.Place, error) {
	row := r.pool.db.QueryRowContext(ctx, placeSelect+" WHERE id = ?", id)
	return scanPlace(row)
}

// ListPlaces returns one page of the catalog ordered by name, together with
// the total catalog size.
func (r *PlaceRepository) ListPlaces(ctx context.Context, offset, limit int) ([]persistence.Place, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	var total int
	if err := r.pool.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM places").Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	rows, err := r.pool.db.QueryContext(ctx,
		placeSelect+" ORDER BY name, id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var places []persistence.Place
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, 0, err
		}
		places = append(places, place)
	}
	return places, total, mapError(rows.Err())
}

const placeSelect = "SELECT id, name, address, thumbnail_url, created_at FROM places"

func scanPlace(row rowScanner) (persistence.Place, error) {
	var place persistence.Place
	var createdAt string
	if err := row.Scan(&place.ID, &place.Name, &place.Address, &place.ThumbnailURL, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return persistence.Place{}, persistence.ErrNotFound
		}
		return persistence.Place{}, mapError(err)
	}

	var err error
	if place.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.Place{}, err
	}
	return place, nil
}
