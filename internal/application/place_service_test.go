package application_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/testfixtures"
)

func TestPlaceService_Create(t *testing.T) {
	h := testfixtures.NewServiceHarness()

	place, err := h.Places.Create(context.Background(), application.CreatePlaceParams{
		Name:    " Fushimi Inari ",
		Address: "68 Fukakusa Yabunouchicho",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if place.Name != "Fushimi Inari" {
		t.Fatalf("expected trimmed name, got %q", place.Name)
	}

	t.Run("empty name fails validation", func(t *testing.T) {
		_, err := h.Places.Create(context.Background(), application.CreatePlaceParams{Name: "  "})
		var vErr *application.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestPlaceService_List(t *testing.T) {
	h := testfixtures.NewServiceHarness()
	for i := 0; i < 5; i++ {
		seedPlace(t, h, fmt.Sprintf("Place %02d", i))
	}

	page, err := h.Places.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("expected total 5, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].Name != "Place 02" {
		t.Fatalf("unexpected first item %q", page.Items[0].Name)
	}

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := h.Places.List(context.Background(), 10, 2)
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		if len(page.Items) != 0 {
			t.Fatalf("expected empty page, got %d items", len(page.Items))
		}
		if page.Total != 5 {
			t.Fatalf("expected total 5, got %d", page.Total)
		}
	})
}
