package persistence

import "context"

// MemberRepository exposes lookups against the member registry.
type MemberRepository interface {
	CreateMember(ctx context.Context, member Member) error
	GetMember(ctx context.Context, id string) (Member, error)
	GetMemberByEmail(ctx context.Context, email string) (Member, error)
	GetMemberByNickname(ctx context.Context, nickname string) (Member, error)
	ListMembersByIDs(ctx context.Context, ids []string) ([]Member, error)
}

// PlaceRepository exposes lookups against the place catalog.
type PlaceRepository interface {
	CreatePlace(ctx context.Context, place Place) error
	GetPlace(ctx context.Context, id string) (Place, error)
	ListPlaces(ctx context.Context, offset, limit int) ([]Place, int, error)
}

// ScheduleRepository stores schedules. Creation installs the author attendee
// in the same transaction as the schedule row; update replaces the route list
// in the same transaction as the field update; deletion cascades to attendees
// and routes through referential cleanup.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule Schedule, author Attendee) error
	GetSchedule(ctx context.Context, id string) (Schedule, error)
	UpdateSchedule(ctx context.Context, schedule Schedule, routes []Route) error
	DeleteSchedule(ctx context.Context, id string) error
	ListSchedulesForMember(ctx context.Context, memberID string) ([]Schedule, error)
}

// AttendeeRepository stores schedule membership records.
type AttendeeRepository interface {
	CreateAttendee(ctx context.Context, attendee Attendee) error
	GetAttendee(ctx context.Context, scheduleID, attendeeID string) (Attendee, error)
	GetAttendeeByMember(ctx context.Context, scheduleID, memberID string) (Attendee, error)
	ListAttendees(ctx context.Context, scheduleID string) ([]Attendee, error)
	CountAttendees(ctx context.Context, scheduleID string) (int, error)
	UpdateAttendeePermission(ctx context.Context, attendeeID string, permission Permission) error
	DeleteAttendee(ctx context.Context, attendeeID string) error
}

// RouteRepository stores ordered itinerary stops. AppendRoute computes the
// next order value and inserts within one transaction so concurrent appends
// on the same schedule can never observe the same "next order".
type RouteRepository interface {
	AppendRoute(ctx context.Context, route Route) (Route, error)
	ListRoutes(ctx context.Context, scheduleID string) ([]Route, error)
}
