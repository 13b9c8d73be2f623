package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/chatstore/memory"
)

// ServiceHarness bundles every application service over a shared in-memory
// store, with deterministic ids and a controllable clock. It is the default
// setup for service- and handler-level tests.
type ServiceHarness struct {
	Store       *MemoryStore
	Chats       *memory.Store
	Clock       *Clock
	IDGenerator *IDGenerator

	Members   *application.MemberService
	Places    *application.PlaceService
	Attendees *application.AttendeeService
	Routes    *application.RouteService
	Schedules *application.ScheduleService
	Chat      *application.ChatService
}

// NewServiceHarness wires the full service graph with test defaults.
func NewServiceHarness() *ServiceHarness {
	store := NewMemoryStore()
	chats := memory.NewStore()
	clock := NewClock(time.Time{})
	ids := NewIDGenerator("id")
	logger := slog.Default()

	routes := application.NewRouteService(store, store, store, ids.NextFunc(), logger)

	return &ServiceHarness{
		Store:       store,
		Chats:       chats,
		Clock:       clock,
		IDGenerator: ids,
		Members:     application.NewMemberService(store, ids.NextFunc(), clock.NowFunc(), logger),
		Places:      application.NewPlaceService(store, ids.NextFunc(), clock.NowFunc(), logger),
		Attendees:   application.NewAttendeeService(store, store, ids.NextFunc(), clock.NowFunc(), logger),
		Routes:      routes,
		Schedules:   application.NewScheduleService(store, store, store, store, routes, chats, ids.NextFunc(), clock.NowFunc(), logger),
		Chat:        application.NewChatService(chats, store, store, store, 0, clock.NowFunc(), logger),
	}
}
