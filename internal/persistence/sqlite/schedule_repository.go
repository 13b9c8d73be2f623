package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository using SQLite.
type ScheduleRepository struct {
	pool *ConnectionPool
}

// NewScheduleRepository creates a SQLite-backed schedule repository.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// CreateSchedule inserts the schedule and its author attendee in one
// transaction, so a schedule can never exist without its author.
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule persistence.Schedule, author persistence.Attendee) error {
	if schedule.ID == "" || author.ID == "" {
		return persistence.ErrConstraintViolation
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO schedules (id, name, start_date, end_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			schedule.ID,
			schedule.Name,
			schedule.StartDate.UTC().Format(time.RFC3339Nano),
			schedule.EndDate.UTC().Format(time.RFC3339Nano),
			schedule.CreatedAt.UTC().Format(time.RFC3339Nano),
			schedule.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return mapError(err)
		}

		if err := insertAttendeeTx(ctx, tx, author); err != nil {
			return err
		}
		return nil
	})
}

// GetSchedule retrieves a schedule by id.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	row := r.pool.db.QueryRowContext(ctx, scheduleSelect+" WHERE id = ?", id)
	return scanSchedule(row)
}

// UpdateSchedule rewrites the schedule fields and replaces the full route
// list in a single transaction.
func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, schedule persistence.Schedule, routes []persistence.Route) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE schedules SET name = ?, start_date = ?, end_date = ?, updated_at = ?
			WHERE id = ?`,
			schedule.Name,
			schedule.StartDate.UTC().Format(time.RFC3339Nano),
			schedule.EndDate.UTC().Format(time.RFC3339Nano),
			schedule.UpdatedAt.UTC().Format(time.RFC3339Nano),
			schedule.ID,
		)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM routes WHERE schedule_id = ?", schedule.ID); err != nil {
			return mapError(err)
		}
		for _, route := range routes {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO routes (id, schedule_id, place_id, route_order)
				VALUES (?, ?, ?, ?)`,
				route.ID, route.ScheduleID, route.PlaceID, route.Order,
			); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

// DeleteSchedule removes the schedule row. Attendees and routes disappear
// with it through ON DELETE CASCADE.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = ?", id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListSchedulesForMember returns the schedules the member attends, newest first.
func (r *ScheduleRepository) ListSchedulesForMember(ctx context.Context, memberID string) ([]persistence.Schedule, error) {
	rows, err := r.pool.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.start_date, s.end_date, s.created_at, s.updated_at
		FROM schedules s
		JOIN attendees a ON a.schedule_id = s.id
		WHERE a.member_id = ?
		ORDER BY s.created_at DESC, s.id`, memberID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var schedules []persistence.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, mapError(rows.Err())
}

const scheduleSelect = "SELECT id, name, start_date, end_date, created_at, updated_at FROM schedules"

func scanSchedule(row rowScanner) (persistence.Schedule, error) {
	var schedule persistence.Schedule
	var startDate, endDate, createdAt, updatedAt string
	if err := row.Scan(&schedule.ID, &schedule.Name, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return persistence.Schedule{}, persistence.ErrNotFound
		}
		return persistence.Schedule{}, mapError(err)
	}

	var err error
	if schedule.StartDate, err = parseStoredTime(startDate); err != nil {
		return persistence.Schedule{}, err
	}
	if schedule.EndDate, err = parseStoredTime(endDate); err != nil {
		return persistence.Schedule{}, err
	}
	if schedule.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.Schedule{}, err
	}
	if schedule.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return persistence.Schedule{}, err
	}
	return schedule, nil
}
