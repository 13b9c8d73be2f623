package application

import (
	"sync"
	"time"
)

// senderProfile is the resolved display data attached to chat rows.
type senderProfile struct {
	Nickname  string
	AvatarURL string
}

// profileCache stores recently resolved sender profiles so repeated chat page
// loads do not re-query the member registry for the same ids.
type profileCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]profileCacheEntry
}

type profileCacheEntry struct {
	profile   senderProfile
	expiresAt time.Time
}

func newProfileCache(ttl time.Duration, maxEntries int, now func() time.Time) *profileCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 512
	}
	if now == nil {
		now = time.Now
	}
	return &profileCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]profileCacheEntry),
	}
}

func (c *profileCache) Get(memberID string) (senderProfile, bool) {
	if c == nil {
		return senderProfile{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[memberID]
	c.mu.RUnlock()
	if !ok {
		return senderProfile{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, memberID)
		c.mu.Unlock()
		return senderProfile{}, false
	}
	return entry.profile, true
}

func (c *profileCache) Store(memberID string, profile senderProfile) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[memberID] = profileCacheEntry{profile: profile, expiresAt: expiry}
}

func (c *profileCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]profileCacheEntry)
	c.mu.Unlock()
}

func (c *profileCache) cleanupLocked() {
	now := c.now()
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
		}
	}
}

func (c *profileCache) evictOneLocked() {
	for id := range c.entries {
		delete(c.entries, id)
		return
	}
}
