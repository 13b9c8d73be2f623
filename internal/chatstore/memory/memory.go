// Package memory provides an in-process chat store used by tests and by
// deployments that run without a document database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/travel-planner/internal/chatstore"
)

// Store keeps chat messages in memory, grouped by schedule.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]chatstore.Message
	sequence uint64
}

// NewStore returns an empty in-memory chat store.
func NewStore() *Store {
	return &Store{messages: make(map[string][]chatstore.Message)}
}

// Insert stores the message, assigning a sequential id when empty.
func (s *Store) Insert(ctx context.Context, msg chatstore.Message) (chatstore.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		s.sequence++
		msg.ID = fmt.Sprintf("msg-%06d", s.sequence)
	}
	s.messages[msg.ScheduleID] = append(s.messages[msg.ScheduleID], msg)
	return msg, nil
}

// FindPage returns one page of messages, oldest first. Page numbering starts
// at zero; a page past the end is empty, not an error.
func (s *Store) FindPage(ctx context.Context, scheduleID string, page, size int) ([]chatstore.Message, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 30
	}

	all, err := s.FindAll(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	start := page * size
	if start >= len(all) {
		return nil, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// FindAll returns every message for a schedule, oldest first.
func (s *Store) FindAll(ctx context.Context, scheduleID string) ([]chatstore.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[scheduleID]
	out := make([]chatstore.Message, len(stored))
	copy(out, stored)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteBySchedule removes every message for the schedule.
func (s *Store) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, scheduleID)
	return nil
}
