package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/travel-planner/internal/chatstore"
	"github.com/example/travel-planner/internal/persistence"
)

// ScheduleService orchestrates cross-entity schedule operations and enforces
// schedule-level authorization.
type ScheduleService struct {
	schedules   persistence.ScheduleRepository
	attendees   persistence.AttendeeRepository
	members     persistence.MemberRepository
	places      persistence.PlaceRepository
	routeSvc    *RouteService
	chats       chatstore.Store
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewScheduleService wires dependencies for schedule lifecycle operations.
func NewScheduleService(schedules persistence.ScheduleRepository, attendees persistence.AttendeeRepository, members persistence.MemberRepository, places persistence.PlaceRepository, routeSvc *RouteService, chats chatstore.Store, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ScheduleService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		schedules:   schedules,
		attendees:   attendees,
		members:     members,
		places:      places,
		routeSvc:    routeSvc,
		chats:       chats,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Create validates the request, creates the schedule, and installs the
// creator as its author attendee with full rights. Both rows are written in
// one transaction.
func (s *ScheduleService) Create(ctx context.Context, params CreateScheduleParams) (persistence.Schedule, error) {
	logger := serviceLogger(ctx, s.logger, "schedule", "create")

	vErr := &ValidationError{}
	validateScheduleFields(params.Name, params.StartDate, params.EndDate, vErr)
	if vErr.HasErrors() {
		return persistence.Schedule{}, vErr
	}

	creator, err := s.members.GetMember(ctx, params.CreatorMemberID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Schedule{}, notFound(CodeMemberNotFound, "member not found")
		}
		return persistence.Schedule{}, fmt.Errorf("failed to resolve creator: %w", err)
	}

	createdAt := s.now()
	schedule := persistence.Schedule{
		ID:        s.idGenerator(),
		Name:      strings.TrimSpace(params.Name),
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	author := persistence.Attendee{
		ID:         s.idGenerator(),
		ScheduleID: schedule.ID,
		MemberID:   creator.ID,
		Role:       persistence.RoleAuthor,
		Permission: persistence.PermissionAll,
		CreatedAt:  createdAt,
	}

	if err := s.schedules.CreateSchedule(ctx, schedule, author); err != nil {
		return persistence.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}

	logger.InfoContext(ctx, "schedule created", "schedule_id", schedule.ID, "author_member_id", creator.ID)
	return schedule, nil
}

// GetDetail assembles the schedule metadata, its itinerary, and one page of
// the place catalog for browsing.
func (s *ScheduleService) GetDetail(ctx context.Context, params GetScheduleDetailParams) (ScheduleDetail, error) {
	schedule, err := s.schedules.GetSchedule(ctx, params.ScheduleID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return ScheduleDetail{}, notFound(CodeScheduleNotFound, "schedule not found")
		}
		return ScheduleDetail{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	routes, err := s.routeSvc.List(ctx, schedule.ID)
	if err != nil {
		return ScheduleDetail{}, err
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := params.Page
	if page < 0 {
		page = 0
	}
	items, total, err := s.places.ListPlaces(ctx, page*pageSize, pageSize)
	if err != nil {
		return ScheduleDetail{}, fmt.Errorf("failed to browse places: %w", err)
	}

	return ScheduleDetail{
		Schedule: schedule,
		Routes:   routes,
		Places: PlacePage{
			Items:    items,
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// Update rewrites the schedule fields and replaces the whole itinerary. The
// requester must attend the schedule with at least EDIT permission. Field
// update and route replacement commit in a single transaction.
func (s *ScheduleService) Update(ctx context.Context, params UpdateScheduleParams) (persistence.Schedule, error) {
	logger := serviceLogger(ctx, s.logger, "schedule", "update", "schedule_id", params.ScheduleID)

	schedule, err := s.schedules.GetSchedule(ctx, params.ScheduleID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Schedule{}, notFound(CodeScheduleNotFound, "schedule not found")
		}
		return persistence.Schedule{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	attendee, err := s.attendees.GetAttendeeByMember(ctx, params.ScheduleID, params.MemberID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			// The schedule exists; a caller without membership is denied
			// access rather than told the resource is missing.
			return persistence.Schedule{}, forbidden(CodeAccessDenied, "no access to this schedule")
		}
		return persistence.Schedule{}, fmt.Errorf("failed to resolve attendee: %w", err)
	}
	if err := requirePermission(attendee, persistence.PermissionEdit, CodeEditRequired, "edit permission required"); err != nil {
		return persistence.Schedule{}, err
	}

	vErr := &ValidationError{}
	validateScheduleFields(params.Name, params.StartDate, params.EndDate, vErr)
	if vErr.HasErrors() {
		return persistence.Schedule{}, vErr
	}

	routes, err := s.routeSvc.ReplaceAll(ctx, schedule.ID, params.Routes)
	if err != nil {
		return persistence.Schedule{}, err
	}

	schedule.Name = strings.TrimSpace(params.Name)
	schedule.StartDate = params.StartDate
	schedule.EndDate = params.EndDate
	schedule.UpdatedAt = s.now()

	if err := s.schedules.UpdateSchedule(ctx, schedule, routes); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Schedule{}, notFound(CodeScheduleNotFound, "schedule not found")
		}
		return persistence.Schedule{}, fmt.Errorf("failed to update schedule: %w", err)
	}

	logger.InfoContext(ctx, "schedule updated", "routes", len(routes))
	return schedule, nil
}

// Delete removes the schedule and everything referencing it. Only the author
// role may delete, regardless of granted permission level. Chat history is
// purged first: the chat store and the relational store share no transaction,
// and orphaned chat messages are harmless while a dangling relational
// reference would not be.
func (s *ScheduleService) Delete(ctx context.Context, scheduleID, memberID string) error {
	logger := serviceLogger(ctx, s.logger, "schedule", "delete", "schedule_id", scheduleID)

	attendee, err := s.attendees.GetAttendeeByMember(ctx, scheduleID, memberID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return forbidden(CodeAccessDenied, "no access to this schedule")
		}
		return fmt.Errorf("failed to resolve attendee: %w", err)
	}
	if attendee.Role != persistence.RoleAuthor {
		return forbidden(CodeDeleteRequired, "delete permission required")
	}

	messages, err := s.chats.FindAll(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to fetch chat messages: %w", err)
	}
	chatPurged := false
	if len(messages) > 0 {
		if err := s.chats.DeleteBySchedule(ctx, scheduleID); err != nil {
			return fmt.Errorf("failed to delete chat messages: %w", err)
		}
		chatPurged = true
	}

	if err := s.schedules.DeleteSchedule(ctx, scheduleID); err != nil {
		if chatPurged {
			// Chat history is already gone; the relational rows remain. The
			// stores share no transaction, so surface the inconsistency
			// instead of hiding it.
			logger.WarnContext(ctx, "chat history purged but relational delete failed", "error", err)
		}
		if errors.Is(err, persistence.ErrNotFound) {
			return notFound(CodeScheduleNotFound, "schedule not found")
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	logger.InfoContext(ctx, "schedule deleted", "chat_messages_purged", len(messages))
	return nil
}

// ListForMember returns the schedules the member attends, newest first.
func (s *ScheduleService) ListForMember(ctx context.Context, memberID string) ([]persistence.Schedule, error) {
	schedules, err := s.schedules.ListSchedulesForMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func validateScheduleFields(name string, start, end time.Time, vErr *ValidationError) {
	if strings.TrimSpace(name) == "" {
		vErr.add("name", "name is required")
	}
	if start.IsZero() {
		vErr.add("start_date", "start date is required")
	}
	if end.IsZero() {
		vErr.add("end_date", "end date is required")
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		vErr.add("dates", "end date must not precede start date")
	}
}
