package persistence

import "time"

// Role identifies the kind of membership an attendee holds in a schedule.
type Role string

const (
	// RoleAuthor marks the single owning attendee of a schedule.
	RoleAuthor Role = "AUTHOR"
	// RoleGuest marks every invited, permission-gated attendee.
	RoleGuest Role = "GUEST"
)

// Permission is the stored access level granted to an attendee. Levels are
// totally ordered; comparison logic lives in the application layer.
type Permission string

const (
	PermissionRead Permission = "READ"
	PermissionChat Permission = "CHAT"
	PermissionEdit Permission = "EDIT"
	PermissionAll  Permission = "ALL"
)

// Member represents a registered account in the member registry.
type Member struct {
	ID        string
	Email     string
	Nickname  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Place represents a destination catalog entry.
type Place struct {
	ID           string
	Name         string
	Address      string
	ThumbnailURL string
	CreatedAt    time.Time
}

// Schedule represents a shared travel itinerary.
type Schedule struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attendee is a member's membership record in a schedule. Role is immutable
// after creation; only Permission may change.
type Attendee struct {
	ID         string
	ScheduleID string
	MemberID   string
	Role       Role
	Permission Permission
	CreatedAt  time.Time
}

// Route is one ordered stop within a schedule's itinerary. Within a schedule
// the Order values always form a contiguous run starting at 1.
type Route struct {
	ID         string
	ScheduleID string
	PlaceID    string
	Order      int
}
