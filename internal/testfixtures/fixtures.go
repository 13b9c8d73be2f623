package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

var (
	memberCounter   uint64
	placeCounter    uint64
	scheduleCounter uint64
	attendeeCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Member fixtures -----------------------------

// MemberOption configures the generated member fixture.
type MemberOption func(*persistence.Member)

// NewMember returns a deterministic member record with optional overrides.
func NewMember(opts ...MemberOption) persistence.Member {
	idx := atomic.AddUint64(&memberCounter, 1)
	id := fmt.Sprintf("member-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	member := persistence.Member{
		ID:        id,
		Email:     fmt.Sprintf("%s@example.com", id),
		Nickname:  fmt.Sprintf("traveler%03d", idx),
		AvatarURL: fmt.Sprintf("https://cdn.example.com/avatars/%s.png", id),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&member)
	}
	return member
}

// WithMemberEmail overrides the fixture email.
func WithMemberEmail(email string) MemberOption {
	return func(member *persistence.Member) { member.Email = email }
}

// WithMemberNickname overrides the fixture nickname.
func WithMemberNickname(nickname string) MemberOption {
	return func(member *persistence.Member) { member.Nickname = nickname }
}

// ----------------------------- Place fixtures ------------------------------

// PlaceOption configures the generated place fixture.
type PlaceOption func(*persistence.Place)

// NewPlace returns a deterministic place record with optional overrides.
func NewPlace(opts ...PlaceOption) persistence.Place {
	idx := atomic.AddUint64(&placeCounter, 1)
	id := fmt.Sprintf("place-%03d", idx)
	place := persistence.Place{
		ID:           id,
		Name:         fmt.Sprintf("Place %03d", idx),
		Address:      fmt.Sprintf("%d Harbor Street", idx),
		ThumbnailURL: fmt.Sprintf("https://cdn.example.com/places/%s.jpg", id),
		CreatedAt:    referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&place)
	}
	return place
}

// WithPlaceName overrides the fixture name.
func WithPlaceName(name string) PlaceOption {
	return func(place *persistence.Place) { place.Name = name }
}

// --------------------------- Schedule fixtures -----------------------------

// ScheduleOption configures the generated schedule fixture.
type ScheduleOption func(*persistence.Schedule)

// NewSchedule returns a deterministic schedule record with optional overrides.
func NewSchedule(opts ...ScheduleOption) persistence.Schedule {
	idx := atomic.AddUint64(&scheduleCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	schedule := persistence.Schedule{
		ID:        fmt.Sprintf("schedule-%03d", idx),
		Name:      fmt.Sprintf("Trip %03d", idx),
		StartDate: referenceTime.AddDate(0, 1, 0),
		EndDate:   referenceTime.AddDate(0, 1, 3),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&schedule)
	}
	return schedule
}

// WithScheduleName overrides the fixture name.
func WithScheduleName(name string) ScheduleOption {
	return func(schedule *persistence.Schedule) { schedule.Name = name }
}

// --------------------------- Attendee fixtures -----------------------------

// AttendeeOption configures the generated attendee fixture.
type AttendeeOption func(*persistence.Attendee)

// NewAttendee returns a deterministic guest attendee linking the given
// schedule and member. Use WithRole to produce an author.
func NewAttendee(scheduleID, memberID string, opts ...AttendeeOption) persistence.Attendee {
	idx := atomic.AddUint64(&attendeeCounter, 1)
	attendee := persistence.Attendee{
		ID:         fmt.Sprintf("attendee-%03d", idx),
		ScheduleID: scheduleID,
		MemberID:   memberID,
		Role:       persistence.RoleGuest,
		Permission: persistence.PermissionRead,
		CreatedAt:  referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&attendee)
	}
	return attendee
}

// WithRole overrides the fixture role.
func WithRole(role persistence.Role) AttendeeOption {
	return func(attendee *persistence.Attendee) { attendee.Role = role }
}

// WithPermission overrides the fixture permission.
func WithPermission(permission persistence.Permission) AttendeeOption {
	return func(attendee *persistence.Attendee) { attendee.Permission = permission }
}
