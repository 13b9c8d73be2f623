package application

import (
	"testing"
	"time"
)

func TestProfileCache(t *testing.T) {
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	current := base
	now := func() time.Time { return current }

	t.Run("stores and returns within the ttl", func(t *testing.T) {
		cache := newProfileCache(time.Minute, 4, now)
		cache.Store("member-1", senderProfile{Nickname: "alice"})

		profile, ok := cache.Get("member-1")
		if !ok || profile.Nickname != "alice" {
			t.Fatalf("expected cached profile, got %+v ok=%v", profile, ok)
		}
	})

	t.Run("expires after the ttl", func(t *testing.T) {
		cache := newProfileCache(time.Minute, 4, now)
		cache.Store("member-1", senderProfile{Nickname: "alice"})

		current = base.Add(2 * time.Minute)
		defer func() { current = base }()

		if _, ok := cache.Get("member-1"); ok {
			t.Fatalf("expected expired entry to miss")
		}
	})

	t.Run("evicts when full", func(t *testing.T) {
		cache := newProfileCache(time.Minute, 2, now)
		cache.Store("member-1", senderProfile{Nickname: "alice"})
		cache.Store("member-2", senderProfile{Nickname: "bob"})
		cache.Store("member-3", senderProfile{Nickname: "carol"})

		hits := 0
		for _, id := range []string{"member-1", "member-2", "member-3"} {
			if _, ok := cache.Get(id); ok {
				hits++
			}
		}
		if hits != 2 {
			t.Fatalf("expected 2 live entries after eviction, got %d", hits)
		}
	})

	t.Run("invalidate drops everything", func(t *testing.T) {
		cache := newProfileCache(time.Minute, 4, now)
		cache.Store("member-1", senderProfile{Nickname: "alice"})
		cache.Invalidate()

		if _, ok := cache.Get("member-1"); ok {
			t.Fatalf("expected empty cache after invalidate")
		}
	})

	t.Run("nil cache is inert", func(t *testing.T) {
		var cache *profileCache
		cache.Store("member-1", senderProfile{Nickname: "alice"})
		if _, ok := cache.Get("member-1"); ok {
			t.Fatalf("expected nil cache to miss")
		}
		cache.Invalidate()
	})
}
