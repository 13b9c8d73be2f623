package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/travel-planner/internal/chatstore"
)

func TestStore_Insert(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	first, err := store.Insert(context.Background(), chatstore.Message{
		ScheduleID: "schedule-1",
		SenderID:   "member-1",
		Text:       "hello",
		CreatedAt:  base,
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected assigned id")
	}

	second, err := store.Insert(context.Background(), chatstore.Message{
		ScheduleID: "schedule-1",
		SenderID:   "member-1",
		Text:       "again",
		CreatedAt:  base.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("expected distinct ids, both %q", first.ID)
	}

	t.Run("caller-provided id is preserved", func(t *testing.T) {
		msg, err := store.Insert(context.Background(), chatstore.Message{
			ID:         "fixed-id",
			ScheduleID: "schedule-2",
			SenderID:   "member-1",
			Text:       "pinned",
			CreatedAt:  base,
		})
		if err != nil {
			t.Fatalf("Insert returned error: %v", err)
		}
		if msg.ID != "fixed-id" {
			t.Fatalf("expected preserved id, got %q", msg.ID)
		}
	})
}

func TestStore_FindPage(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if _, err := store.Insert(context.Background(), chatstore.Message{
			ScheduleID: "schedule-1",
			SenderID:   "member-1",
			Text:       fmt.Sprintf("message %d", i),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("failed to seed message %d: %v", i, err)
		}
	}

	t.Run("first page is oldest first", func(t *testing.T) {
		page, err := store.FindPage(context.Background(), "schedule-1", 0, 3)
		if err != nil {
			t.Fatalf("FindPage returned error: %v", err)
		}
		if len(page) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(page))
		}
		if page[0].Text != "message 0" || page[2].Text != "message 2" {
			t.Fatalf("unexpected page content: %+v", page)
		}
	})

	t.Run("last page is short", func(t *testing.T) {
		page, err := store.FindPage(context.Background(), "schedule-1", 2, 3)
		if err != nil {
			t.Fatalf("FindPage returned error: %v", err)
		}
		if len(page) != 1 || page[0].Text != "message 6" {
			t.Fatalf("unexpected last page: %+v", page)
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := store.FindPage(context.Background(), "schedule-1", 9, 3)
		if err != nil {
			t.Fatalf("FindPage returned error: %v", err)
		}
		if len(page) != 0 {
			t.Fatalf("expected empty page, got %d messages", len(page))
		}
	})

	t.Run("unknown schedule is empty", func(t *testing.T) {
		page, err := store.FindPage(context.Background(), "no-such-schedule", 0, 3)
		if err != nil {
			t.Fatalf("FindPage returned error: %v", err)
		}
		if len(page) != 0 {
			t.Fatalf("expected empty page, got %d messages", len(page))
		}
	})
}

func TestStore_DeleteBySchedule(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for _, scheduleID := range []string{"schedule-1", "schedule-2"} {
		if _, err := store.Insert(context.Background(), chatstore.Message{
			ScheduleID: scheduleID,
			SenderID:   "member-1",
			Text:       "hello",
			CreatedAt:  base,
		}); err != nil {
			t.Fatalf("failed to seed message: %v", err)
		}
	}

	if err := store.DeleteBySchedule(context.Background(), "schedule-1"); err != nil {
		t.Fatalf("DeleteBySchedule returned error: %v", err)
	}

	purged, err := store.FindAll(context.Background(), "schedule-1")
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(purged) != 0 {
		t.Fatalf("expected purged history, got %d messages", len(purged))
	}

	kept, err := store.FindAll(context.Background(), "schedule-2")
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected other schedule untouched, got %d messages", len(kept))
	}
}
