package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/persistence"
	"github.com/example/travel-planner/internal/testfixtures"
)

func TestChatService_Send(t *testing.T) {
	t.Run("chat guest sends a message", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		seedGuest(t, h, schedule, author, guest, persistence.PermissionChat)

		message, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     schedule.ID,
			SenderNickname: guest.Nickname,
			Text:           "what time do we meet?",
		})
		if err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
		if message.ID == "" {
			t.Fatalf("expected a store-assigned message id")
		}
		if message.SenderID != guest.ID {
			t.Fatalf("expected sender %q, got %q", guest.ID, message.SenderID)
		}
		if !message.CreatedAt.Equal(h.Clock.Current()) {
			t.Fatalf("expected timestamp %v, got %v", h.Clock.Current(), message.CreatedAt)
		}
	})

	t.Run("read-only guest cannot send", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		seedGuest(t, h, schedule, author, guest, persistence.PermissionRead)

		_, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     schedule.ID,
			SenderNickname: guest.Nickname,
			Text:           "hello",
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeChatRequired {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("author may always send", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		if _, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     schedule.ID,
			SenderNickname: author.Nickname,
			Text:           "welcome aboard",
		}); err != nil {
			t.Fatalf("Send returned error: %v", err)
		}
	})

	t.Run("member outside the roster cannot send", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		outsider := seedMember(t, h, "mallory")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		_, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     schedule.ID,
			SenderNickname: outsider.Nickname,
			Text:           "let me in",
		})
		if !errors.Is(err, application.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeNotParticipant {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("unknown nickname is not found", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		_, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     schedule.ID,
			SenderNickname: "ghost",
			Text:           "boo",
		})
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeMemberNotFound {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("missing schedule is not found", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		sender := seedMember(t, h, "alice")

		_, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     "no-such-schedule",
			SenderNickname: sender.Nickname,
			Text:           "hello",
		})
		if !errors.Is(err, application.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
		if code := application.ErrorCode(err); code != application.CodeScheduleNotFound {
			t.Fatalf("unexpected code %q", code)
		}
	})

	t.Run("empty text fails validation", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		_, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
			ScheduleID:     schedule.ID,
			SenderNickname: author.Nickname,
			Text:           "   ",
		})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestChatService_GetPage(t *testing.T) {
	t.Run("resolves sender profiles oldest first", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		guest := seedMember(t, h, "bob")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")
		seedGuest(t, h, schedule, author, guest, persistence.PermissionChat)

		for i, sender := range []persistence.Member{author, guest, author} {
			h.Clock.Advance(time.Minute)
			if _, err := h.Chat.Send(context.Background(), application.SendChatMessageParams{
				ScheduleID:     schedule.ID,
				SenderNickname: sender.Nickname,
				Text:           fmt.Sprintf("message %d", i),
			}); err != nil {
				t.Fatalf("failed to seed message %d: %v", i, err)
			}
		}

		views, err := h.Chat.GetPage(context.Background(), schedule.ID, 0)
		if err != nil {
			t.Fatalf("GetPage returned error: %v", err)
		}
		if len(views) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(views))
		}
		if views[0].Text != "message 0" || views[2].Text != "message 2" {
			t.Fatalf("unexpected ordering: %+v", views)
		}
		if views[0].Nickname != author.Nickname {
			t.Fatalf("expected nickname %q, got %q", author.Nickname, views[0].Nickname)
		}
		if views[1].Nickname != guest.Nickname {
			t.Fatalf("expected nickname %q, got %q", guest.Nickname, views[1].Nickname)
		}
		if !views[0].SentAt.Before(views[2].SentAt) {
			t.Fatalf("expected ascending timestamps")
		}
	})

	t.Run("unresolvable sender keeps the message with a default profile", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		if _, err := h.Chats.Insert(context.Background(), chatMessageFor(schedule.ID, "deleted-member", "orphaned", h.Clock.Current())); err != nil {
			t.Fatalf("failed to seed orphaned message: %v", err)
		}

		views, err := h.Chat.GetPage(context.Background(), schedule.ID, 0)
		if err != nil {
			t.Fatalf("GetPage returned error: %v", err)
		}
		if len(views) != 1 {
			t.Fatalf("expected 1 message, got %d", len(views))
		}
		if views[0].Nickname != "(unknown)" {
			t.Fatalf("expected default nickname, got %q", views[0].Nickname)
		}
		if views[0].AvatarURL != "" {
			t.Fatalf("expected empty avatar, got %q", views[0].AvatarURL)
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		h := testfixtures.NewServiceHarness()
		author := seedMember(t, h, "alice")
		schedule := seedSchedule(t, h, author, "Kyoto Trip")

		views, err := h.Chat.GetPage(context.Background(), schedule.ID, 5)
		if err != nil {
			t.Fatalf("GetPage returned error: %v", err)
		}
		if len(views) != 0 {
			t.Fatalf("expected empty page, got %d messages", len(views))
		}
	})
}
