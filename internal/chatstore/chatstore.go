// Package chatstore defines the document-store boundary for schedule chat
// messages. Chat history lives outside the relational store: the planner core
// only authorizes sends, reads pages, and purges history when a schedule is
// deleted.
package chatstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested message does not exist.
var ErrNotFound = errors.New("chatstore: not found")

// Message is one chat entry scoped to a schedule.
type Message struct {
	ID         string
	ScheduleID string
	SenderID   string
	Text       string
	CreatedAt  time.Time
}

// Store is the document-store boundary consumed by the chat gateway and the
// schedule delete cascade.
type Store interface {
	// Insert persists the message, assigning the store's id when msg.ID is
	// empty, and returns the stored message.
	Insert(ctx context.Context, msg Message) (Message, error)
	// FindPage returns one page of messages for a schedule, oldest first.
	// Page numbering starts at zero.
	FindPage(ctx context.Context, scheduleID string, page, size int) ([]Message, error)
	// FindAll returns every message for a schedule, oldest first.
	FindAll(ctx context.Context, scheduleID string) ([]Message, error)
	// DeleteBySchedule removes every message for a schedule.
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}
