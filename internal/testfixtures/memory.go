package testfixtures

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/travel-planner/internal/persistence"
)

// MemoryStore is an in-memory implementation of every persistence repository.
// It mirrors the relational store's guarantees closely enough for service
// tests: uniqueness constraints, cascading schedule deletes, and atomic
// append-order computation.
type MemoryStore struct {
	mu        sync.RWMutex
	members   map[string]persistence.Member
	places    map[string]persistence.Place
	schedules map[string]persistence.Schedule
	attendees map[string]persistence.Attendee
	routes    map[string][]persistence.Route
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		members:   make(map[string]persistence.Member),
		places:    make(map[string]persistence.Place),
		schedules: make(map[string]persistence.Schedule),
		attendees: make(map[string]persistence.Attendee),
		routes:    make(map[string][]persistence.Route),
	}
}

// --- MemberRepository ---

func (s *MemoryStore) CreateMember(ctx context.Context, member persistence.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range s.members {
		if strings.EqualFold(existing.Email, member.Email) || existing.Nickname == member.Nickname {
			return persistence.ErrDuplicate
		}
	}
	s.members[member.ID] = member
	return nil
}

func (s *MemoryStore) GetMember(ctx context.Context, id string) (persistence.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.members[id]
	if !ok {
		return persistence.Member{}, persistence.ErrNotFound
	}
	return member, nil
}

func (s *MemoryStore) GetMemberByEmail(ctx context.Context, email string) (persistence.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members {
		if strings.EqualFold(member.Email, email) {
			return member, nil
		}
	}
	return persistence.Member{}, persistence.ErrNotFound
}

func (s *MemoryStore) GetMemberByNickname(ctx context.Context, nickname string) (persistence.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members {
		if member.Nickname == nickname {
			return member, nil
		}
	}
	return persistence.Member{}, persistence.ErrNotFound
}

func (s *MemoryStore) ListMembersByIDs(ctx context.Context, ids []string) ([]persistence.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []persistence.Member
	for _, id := range ids {
		if member, ok := s.members[id]; ok {
			members = append(members, member)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

// --- PlaceRepository ---

func (s *MemoryStore) CreatePlace(ctx context.Context, place persistence.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.places[place.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.places[place.ID] = place
	return nil
}

func (s *MemoryStore) GetPlace(ctx context.Context, id string) (persistence.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	place, ok := s.places[id]
	if !ok {
		return persistence.Place{}, persistence.ErrNotFound
	}
	return place, nil
}

func (s *MemoryStore) ListPlaces(ctx context.Context, offset, limit int) ([]persistence.Place, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]persistence.Place, 0, len(s.places))
	for _, place := range s.places {
		all = append(all, place)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})

	total := len(all)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// --- ScheduleRepository ---

func (s *MemoryStore) CreateSchedule(ctx context.Context, schedule persistence.Schedule, author persistence.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[schedule.ID]; ok {
		return persistence.ErrDuplicate
	}
	if err := s.insertAttendeeLocked(author); err != nil {
		return err
	}
	s.schedules[schedule.ID] = schedule
	return nil
}

func (s *MemoryStore) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schedule, ok := s.schedules[id]
	if !ok {
		return persistence.Schedule{}, persistence.ErrNotFound
	}
	return schedule, nil
}

func (s *MemoryStore) UpdateSchedule(ctx context.Context, schedule persistence.Schedule, routes []persistence.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[schedule.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.schedules[schedule.ID] = schedule
	replacement := make([]persistence.Route, len(routes))
	copy(replacement, routes)
	s.routes[schedule.ID] = replacement
	return nil
}

func (s *MemoryStore) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.schedules[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.schedules, id)
	delete(s.routes, id)
	for attendeeID, attendee := range s.attendees {
		if attendee.ScheduleID == id {
			delete(s.attendees, attendeeID)
		}
	}
	return nil
}

func (s *MemoryStore) ListSchedulesForMember(ctx context.Context, memberID string) ([]persistence.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var schedules []persistence.Schedule
	for _, attendee := range s.attendees {
		if attendee.MemberID != memberID {
			continue
		}
		if schedule, ok := s.schedules[attendee.ScheduleID]; ok {
			schedules = append(schedules, schedule)
		}
	}
	sort.Slice(schedules, func(i, j int) bool {
		if schedules[i].CreatedAt.Equal(schedules[j].CreatedAt) {
			return schedules[i].ID < schedules[j].ID
		}
		return schedules[i].CreatedAt.After(schedules[j].CreatedAt)
	})
	return schedules, nil
}

// --- AttendeeRepository ---

func (s *MemoryStore) CreateAttendee(ctx context.Context, attendee persistence.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertAttendeeLocked(attendee)
}

func (s *MemoryStore) insertAttendeeLocked(attendee persistence.Attendee) error {
	if _, ok := s.attendees[attendee.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range s.attendees {
		if existing.ScheduleID != attendee.ScheduleID {
			continue
		}
		if existing.MemberID == attendee.MemberID {
			return persistence.ErrDuplicate
		}
		if attendee.Role == persistence.RoleAuthor && existing.Role == persistence.RoleAuthor {
			return persistence.ErrDuplicate
		}
	}
	s.attendees[attendee.ID] = attendee
	return nil
}

func (s *MemoryStore) GetAttendee(ctx context.Context, scheduleID, attendeeID string) (persistence.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attendee, ok := s.attendees[attendeeID]
	if !ok || attendee.ScheduleID != scheduleID {
		return persistence.Attendee{}, persistence.ErrNotFound
	}
	return attendee, nil
}

func (s *MemoryStore) GetAttendeeByMember(ctx context.Context, scheduleID, memberID string) (persistence.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, attendee := range s.attendees {
		if attendee.ScheduleID == scheduleID && attendee.MemberID == memberID {
			return attendee, nil
		}
	}
	return persistence.Attendee{}, persistence.ErrNotFound
}

func (s *MemoryStore) ListAttendees(ctx context.Context, scheduleID string) ([]persistence.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var attendees []persistence.Attendee
	for _, attendee := range s.attendees {
		if attendee.ScheduleID == scheduleID {
			attendees = append(attendees, attendee)
		}
	}
	sort.Slice(attendees, func(i, j int) bool {
		if attendees[i].Role != attendees[j].Role {
			return attendees[i].Role == persistence.RoleAuthor
		}
		if attendees[i].CreatedAt.Equal(attendees[j].CreatedAt) {
			return attendees[i].ID < attendees[j].ID
		}
		return attendees[i].CreatedAt.Before(attendees[j].CreatedAt)
	})
	return attendees, nil
}

func (s *MemoryStore) CountAttendees(ctx context.Context, scheduleID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, attendee := range s.attendees {
		if attendee.ScheduleID == scheduleID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) UpdateAttendeePermission(ctx context.Context, attendeeID string, permission persistence.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attendee, ok := s.attendees[attendeeID]
	if !ok {
		return persistence.ErrNotFound
	}
	attendee.Permission = permission
	s.attendees[attendeeID] = attendee
	return nil
}

func (s *MemoryStore) DeleteAttendee(ctx context.Context, attendeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendees[attendeeID]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.attendees, attendeeID)
	return nil
}

// --- RouteRepository ---

func (s *MemoryStore) AppendRoute(ctx context.Context, route persistence.Route) (persistence.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxOrder := 0
	for _, existing := range s.routes[route.ScheduleID] {
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	route.Order = maxOrder + 1
	s.routes[route.ScheduleID] = append(s.routes[route.ScheduleID], route)
	return route, nil
}

func (s *MemoryStore) ListRoutes(ctx context.Context, scheduleID string) ([]persistence.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.routes[scheduleID]
	routes := make([]persistence.Route, len(stored))
	copy(routes, stored)
	sort.Slice(routes, func(i, j int) bool { return routes[i].Order < routes[j].Order })
	return routes, nil
}
