package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/persistence"
	"github.com/example/travel-planner/internal/testfixtures"
)

func TestAttendeeService_Invite(t *testing.T) {
	t.Run("author invites a member as guest", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		attendee, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			InviteeEmail:      guest.Email,
			Permission:        persistence.PermissionChat,
		})
		if err != nil {
			t.Fatalf("Invite returned error: %v", err)
		}
		if attendee.Role != persistence.RoleGuest {
			t.Fatalf("expected GUEST role, got %q", attendee.Role)
		}
		if attendee.Permission != persistence.PermissionChat {
			t.Fatalf("expected CHAT permission, got %q", attendee.Permission)
		}
		if attendee.MemberID != guest.ID {
			t.Fatalf("expected member %q, got %q", guest.ID, attendee.MemberID)
		}
	})

	t.Run("guest cannot invite", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		other := seedMember(t, h, "carol")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		seedGuest(t, h, schedule, author, guest, persistence.PermissionAll)

		_, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: guest.ID,
			InviteeEmail:      other.Email,
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeNotAuthor {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("non-attendee cannot invite even with valid schedule", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		outsider := seedMember(t, h, "mallory")
		invitee := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		_, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: outsider.ID,
			InviteeEmail:      invitee.Email,
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("sixth attendee is rejected", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		for i := 0; i < application.MaxAttendees-1; i++ {
			guest := seedMember(t, h, fmt.Sprintf("guest%d", i))
			seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)
		}

		extra := seedMember(t, h, "overflow")
		_, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			InviteeEmail:      extra.Email,
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeAttendeeLimit {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("double invite is rejected", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)

		_, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			InviteeEmail:      guest.Email,
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeAlreadyAttendee {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		_, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			InviteeEmail:      "nobody@example.com",
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeMemberNotFound {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("unknown permission level fails validation", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		_, err := h.Attendees.Invite(context.Background(), application.InviteAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			InviteeEmail:      guest.Email,
			Permission:        persistence.Permission("OWNER"),
		})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestAttendeeService_UpdatePermission(t *testing.T) {
	t.Run("author raises a guest's permission", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		attendee := seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)

		err := h.Attendees.UpdatePermission(context.Background(), application.UpdateAttendeePermissionParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			AttendeeID:        attendee.ID,
			Permission:        persistence.PermissionEdit,
		})
		if err != nil {
			t.Fatalf("UpdatePermission returned error: %v", err)
		}

		updated, err := h.Store.GetAttendee(context.Background(), schedule.ID, attendee.ID)
		if err != nil {
			t.Fatalf("failed to reload attendee: %v", err)
		}
		if updated.Permission != persistence.PermissionEdit {
			t.Fatalf("expected EDIT, got %q", updated.Permission)
		}
	})

	t.Run("author record cannot be targeted", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		authorAttendee, err := h.Store.GetAttendeeByMember(context.Background(), schedule.ID, author.ID)
		if err != nil {
			t.Fatalf("failed to resolve author attendee: %v", err)
		}

		err = h.Attendees.UpdatePermission(context.Background(), application.UpdateAttendeePermissionParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			AttendeeID:        authorAttendee.ID,
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeAuthorPermissionSet {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("guest cannot change permissions", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		attendee := seedGuest(t, h, schedule, author, guest, persistence.PermissionAll)

		err := h.Attendees.UpdatePermission(context.Background(), application.UpdateAttendeePermissionParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: guest.ID,
			AttendeeID:        attendee.ID,
			Permission:        persistence.PermissionRead,
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeNotAuthor {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("attendee from another schedule is not found", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		first := seedSchedule(t, h, author, "Kyoto Trip")
		second := seedSchedule(t, h, author, "Osaka Trip")
		attendee := seedGuest(t, h, first, author, guest, persistence.PermissionRead)

		err := h.Attendees.UpdatePermission(context.Background(), application.UpdateAttendeePermissionParams{
			ScheduleID:        second.ID,
			RequesterMemberID: author.ID,
			AttendeeID:        attendee.ID,
			Permission:        persistence.PermissionEdit,
		})
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeAttendeeNotFound {
			t.Fatalf("unexpected code %q", code)
		}
	})
}

func TestAttendeeService_Leave(t *testing.T) {
	t.Run("guest leaves the roster", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)

		if err := h.Attendees.Leave(context.Background(), schedule.ID, guest.ID); err != nil {
			t.Fatalf("Leave returned error: %v", err)
		}

		if _, err := h.Store.GetAttendeeByMember(context.Background(), schedule.ID, guest.ID); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected attendee to be gone, got %v", err)
		}
	})

	t.Run("author cannot leave", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		err := h.Attendees.Leave(context.Background(), schedule.ID, author.ID)
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeAuthorLocked {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("non-participant cannot leave", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		outsider := seedMember(t, h, "mallory")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		err := h.Attendees.Leave(context.Background(), schedule.ID, outsider.ID)
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeNotParticipant {
			t.Fatalf("unexpected code %q", code)
		}
	})
}

func TestAttendeeService_Remove(t *testing.T) {
	t.Run("author removes a guest", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		attendee := seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)

		err := h.Attendees.Remove(context.Background(), application.RemoveAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			AttendeeID:        attendee.ID,
		})
		if err != nil {
			t.Fatalf("Remove returned error: %v", err)
		}
	})

	t.Run("author record cannot be removed", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		authorAttendee, err := h.Store.GetAttendeeByMember(context.Background(), schedule.ID, author.ID)
		if err != nil {
			t.Fatalf("failed to resolve author attendee: %v", err)
		}

		err = h.Attendees.Remove(context.Background(), application.RemoveAttendeeParams{
			ScheduleID:        schedule.ID,
			RequesterMemberID: author.ID,
			AttendeeID:        authorAttendee.ID,
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeAuthorLocked {
			t.Fatalf("unexpected code %q", code)
		}
	})
}

func TestAttendeeService_List(t *testing.T) {
	h := testfixtures.NewServiceHarness()
	author := seedMember(t, h, "alice")
	schedule := seedSchedule(t, h, author, "Kyoto Trip")
	for _, nickname := range []string{"bob", "carol"} {
		guest := seedMember(t, h, nickname)
		seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)
	}

	attendees, err := h.Attendees.List(context.Background(), schedule.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(attendees) != 3 {
		t.Fatalf("expected 3 attendees, got %d", len(attendees))
	}
	if attendees[0].Role != persistence.RoleAuthor {
		t.Fatalf("expected author first, got %q", attendees[0].Role)
	}
}
