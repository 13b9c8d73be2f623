package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/chatstore"
	"github.com/example/travel-planner/internal/persistence"
	"github.com/example/travel-planner/internal/testfixtures"
)

// seedMember registers a member through the service so constraints apply.
func seedMember(t *testing.T, h *testfixtures.ServiceHarness, nickname string) persistence.Member {
	t.Helper()

	member, err := h.Members.Create(context.Background(), application.CreateMemberParams{
		Email:    fmt.Sprintf("%s@example.com", nickname),
		Nickname: nickname,
	})
	if err != nil {
		t.Fatalf("failed to seed member %q: %v", nickname, err)
	}
	return member
}

// seedPlace registers a catalog place.
func seedPlace(t *testing.T, h *testfixtures.ServiceHarness, name string) persistence.Place {
	t.Helper()

	place, err := h.Places.Create(context.Background(), application.CreatePlaceParams{
		Name:    name,
		Address: "1 Harbor Street",
	})
	if err != nil {
		t.Fatalf("failed to seed place %q: %v", name, err)
	}
	return place
}

// seedSchedule creates a schedule whose author is the given member.
func seedSchedule(t *testing.T, h *testfixtures.ServiceHarness, creator persistence.Member, name string) persistence.Schedule {
	t.Helper()

	schedule, err := h.Schedules.Create(context.Background(), application.CreateScheduleParams{
		CreatorMemberID: creator.ID,
		Name:            name,
		StartDate:       testfixtures.ReferenceTime().AddDate(0, 1, 0),
		EndDate:         testfixtures.ReferenceTime().AddDate(0, 1, 3),
	})
	if err != nil {
		t.Fatalf("failed to seed schedule %q: %v", name, err)
	}
	return schedule
}

// seedGuest invites the member into the schedule with the given permission.
// The requester must be the schedule author.
func seedGuest(t *testing.T, h *testfixtures.ServiceHarness, schedule persistence.Schedule, author, guest persistence.Member, permission persistence.Permission) persistence.Attendee {
	t.Helper()

	attendee, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
		ScheduleID:        schedule.ID,
		RequesterMemberID: author.ID,
		InviteeEmail:      guest.Email,
		Permission:        permission,
	})
	if err != nil {
		t.Fatalf("failed to seed guest %q: %v", guest.Nickname, err)
	}
	return attendee
}

// chatMessageFor builds a raw chat message for seeding the store directly.
func chatMessageFor(scheduleID, senderID, text string, at time.Time) chatstore.Message {
	return chatstore.Message{
		ScheduleID: scheduleID,
		SenderID:   senderID,
		Text:       text,
		CreatedAt:  at,
	}
}
