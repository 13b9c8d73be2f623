package application

import (
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// CreateScheduleParams describes a new schedule. The creator becomes the
// schedule's author attendee.
type CreateScheduleParams struct {
	CreatorMemberID string
	Name            string
	StartDate       time.Time
	EndDate         time.Time
}

// UpdateScheduleParams carries a full replacement of the schedule fields and
// its itinerary.
type UpdateScheduleParams struct {
	ScheduleID string
	MemberID   string
	Name       string
	StartDate  time.Time
	EndDate    time.Time
	Routes     []RouteInput
}

// RouteInput is one caller-supplied itinerary entry. Order is advisory: it
// expresses the caller's intended grouping, but stored orders are always
// renumbered contiguously from 1 in the sequence the entries were supplied.
type RouteInput struct {
	Order   int
	PlaceID string
}

// GetScheduleDetailParams selects a schedule and one page of the place
// catalog to browse alongside it.
type GetScheduleDetailParams struct {
	ScheduleID string
	Page       int
	PageSize   int
}

// ScheduleDetail is the assembled detail view for one schedule.
type ScheduleDetail struct {
	Schedule persistence.Schedule
	Routes   []persistence.Route
	Places   PlacePage
}

// PlacePage is one page of the place catalog.
type PlacePage struct {
	Items    []persistence.Place
	Page     int
	PageSize int
	Total    int
}

// InviteAttendeeParams describes an author inviting a member by email.
type InviteAttendeeParams struct {
	ScheduleID        string
	RequesterMemberID string
	InviteeEmail      string
	Permission        persistence.Permission
}

// UpdateAttendeePermissionParams describes an author changing a guest's
// permission level.
type UpdateAttendeePermissionParams struct {
	ScheduleID        string
	RequesterMemberID string
	AttendeeID        string
	Permission        persistence.Permission
}

// RemoveAttendeeParams describes an author removing a guest from the roster.
type RemoveAttendeeParams struct {
	ScheduleID        string
	RequesterMemberID string
	AttendeeID        string
}

// SendChatMessageParams describes a chat send. The sender is addressed by
// nickname; resolution to a member happens inside the gateway.
type SendChatMessageParams struct {
	ScheduleID     string
	SenderNickname string
	Text           string
}

// ChatMessageView is one display-ready chat row with the sender profile
// resolved.
type ChatMessageView struct {
	MessageID string
	SenderID  string
	Nickname  string
	AvatarURL string
	Text      string
	SentAt    time.Time
}

// CreateMemberParams registers a member profile.
type CreateMemberParams struct {
	Email     string
	Nickname  string
	AvatarURL string
}

// CreatePlaceParams registers a place catalog entry.
type CreatePlaceParams struct {
	Name         string
	Address      string
	ThumbnailURL string
}
