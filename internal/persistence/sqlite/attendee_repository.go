package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// AttendeeRepository implements persistence.AttendeeRepository using SQLite.
type AttendeeRepository struct {
	pool *ConnectionPool
}

// NewAttendeeRepository creates a SQLite-backed attendee repository.
func NewAttendeeRepository(pool *ConnectionPool) *AttendeeRepository {
	return &AttendeeRepository{pool: pool}
}

// CreateAttendee inserts a new membership record.
func (r *AttendeeRepository) CreateAttendee(ctx context.Context, attendee persistence.Attendee) error {
	if attendee.ID == "" {
		return persistence.ErrConstraintViolation
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return insertAttendeeTx(ctx, tx, attendee)
	})
}

func insertAttendeeTx(ctx context.Context, tx *sql.Tx, attendee persistence.Attendee) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO attendees (id, schedule_id, member_id, role, permission, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		attendee.ID,
		attendee.ScheduleID,
		attendee.MemberID,
		string(attendee.Role),
		string(attendee.Permission),
		attendee.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return mapError(err)
}

// GetAttendee retrieves an attendee by id, scoped to the schedule so an
// attendee id from another schedule can never be addressed.
func (r *AttendeeRepository) GetAttendee(ctx context.Context, scheduleID, attendeeID string) (persistence.Attendee, error) {
	row := r.pool.db.QueryRowContext(ctx,
		attendeeSelect+" WHERE schedule_id = ? AND id = ?", scheduleID, attendeeID)
	return scanAttendee(row)
}

// GetAttendeeByMember retrieves the membership record for a member within a
// schedule.
func (r *AttendeeRepository) GetAttendeeByMember(ctx context.Context, scheduleID, memberID string) (persistence.Attendee, error) {
	row := r.pool.db.QueryRowContext(ctx,
		attendeeSelect+" WHERE schedule_id = ? AND member_id = ?", scheduleID, memberID)
	return scanAttendee(row)
}

// ListAttendees returns the full roster for a schedule, author first, then by
// join time.
func (r *AttendeeRepository) ListAttendees(ctx context.Context, scheduleID string) ([]persistence.Attendee, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		attendeeSelect+` WHERE schedule_id = ?
		ORDER BY CASE role WHEN 'AUTHOR' THEN 0 ELSE 1 END, created_at, id`, scheduleID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var attendees []persistence.Attendee
	for rows.Next() {
		attendee, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}
	return attendees, mapError(rows.Err())
}

// CountAttendees returns the roster size for a schedule.
func (r *AttendeeRepository) CountAttendees(ctx context.Context, scheduleID string) (int, error) {
	var count int
	err := r.pool.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendees WHERE schedule_id = ?", scheduleID).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// UpdateAttendeePermission mutates the stored permission in place.
func (r *AttendeeRepository) UpdateAttendeePermission(ctx context.Context, attendeeID string, permission persistence.Permission) error {
	result, err := r.pool.db.ExecContext(ctx,
		"UPDATE attendees SET permission = ? WHERE id = ?", string(permission), attendeeID)
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

// DeleteAttendee removes a membership record.
func (r *AttendeeRepository) DeleteAttendee(ctx context.Context, attendeeID string) error {
	result, err := r.pool.db.ExecContext(ctx, "DELETE FROM attendees WHERE id = ?", attendeeID)
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

const attendeeSelect = "SELECT id, schedule_id, member_id, role, permission, created_at FROM attendees"

func scanAttendee(row rowScanner) (persistence.Attendee, error) {
	var attendee persistence.Attendee
	var role, permission, createdAt string
	if err := row.Scan(&attendee.ID, &attendee.ScheduleID, &attendee.MemberID, &role, &permission, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return persistence.Attendee{}, persistence.ErrNotFound
		}
		return persistence.Attendee{}, mapError(err)
	}
	attendee.Role = persistence.Role(role)
	attendee.Permission = persistence.Permission(permission)

	var err error
	if attendee.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.Attendee{}, err
	}
	return attendee, nil
}
