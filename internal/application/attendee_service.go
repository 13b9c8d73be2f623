package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// MaxAttendees is the roster ceiling per schedule, author included.
const MaxAttendees = 5

// AttendeeService enforces who may be part of a schedule and with what
// rights.
type AttendeeService struct {
	attendees   persistence.AttendeeRepository
	members     persistence.MemberRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAttendeeService wires dependencies for roster operations.
func NewAttendeeService(attendees persistence.AttendeeRepository, members persistence.MemberRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AttendeeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AttendeeService{
		attendees:   attendees,
		members:     members,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Invite adds a member, looked up by email, to the schedule roster as a guest
// with the requested permission. Only the author may invite; the roster is
// capped at MaxAttendees.
func (s *AttendeeService) Invite(ctx context.Context, params InviteAttendeeParams) (persistence.Attendee, error) {
	logger := serviceLogger(ctx, s.logger, "attendee", "invite", "schedule_id", params.ScheduleID)

	if !ValidPermission(params.Permission) {
		vErr := &ValidationError{}
		vErr.add("permission", "unknown permission level")
		return persistence.Attendee{}, vErr
	}

	if err := s.requireAuthor(ctx, params.ScheduleID, params.RequesterMemberID); err != nil {
		return persistence.Attendee{}, err
	}

	count, err := s.attendees.CountAttendees(ctx, params.ScheduleID)
	if err != nil {
		return persistence.Attendee{}, fmt.Errorf("failed to count attendees: %w", err)
	}
	if count >= MaxAttendees {
		return persistence.Attendee{}, conflict(CodeAttendeeLimit, "attendee limit reached")
	}

	invitee, err := s.members.GetMemberByEmail(ctx, params.InviteeEmail)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Attendee{}, notFound(CodeMemberNotFound, "member not found")
		}
		return persistence.Attendee{}, fmt.Errorf("failed to resolve invitee: %w", err)
	}

	if _, err := s.attendees.GetAttendeeByMember(ctx, params.ScheduleID, invitee.ID); err == nil {
		return persistence.Attendee{}, conflict(CodeAlreadyAttendee, "member is already an attendee")
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return persistence.Attendee{}, fmt.Errorf("failed to check existing attendee: %w", err)
	}

	attendee := persistence.Attendee{
		ID:         s.idGenerator(),
		ScheduleID: params.ScheduleID,
		MemberID:   invitee.ID,
		Role:       persistence.RoleGuest,
		Permission: params.Permission,
		CreatedAt:  s.now(),
	}
	if err := s.attendees.CreateAttendee(ctx, attendee); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return persistence.Attendee{}, conflict(CodeAlreadyAttendee, "member is already an attendee")
		}
		return persistence.Attendee{}, fmt.Errorf("failed to create attendee: %w", err)
	}

	logger.InfoContext(ctx, "attendee invited", "attendee_id", attendee.ID, "member_id", invitee.ID)
	return attendee, nil
}

// UpdatePermission changes a guest's permission level. The author's own
// record can never be targeted.
func (s *AttendeeService) UpdatePermission(ctx context.Context, params UpdateAttendeePermissionParams) error {
	logger := serviceLogger(ctx, s.logger, "attendee", "update_permission", "schedule_id", params.ScheduleID)

	if !ValidPermission(params.Permission) {
		vErr := &ValidationError{}
		vErr.add("permission", "unknown permission level")
		return vErr
	}

	if err := s.requireAuthor(ctx, params.ScheduleID, params.RequesterMemberID); err != nil {
		return err
	}

	target, err := s.attendees.GetAttendee(ctx, params.ScheduleID, params.AttendeeID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFound(CodeAttendeeNotFound, "attendee not found")
		}
		return fmt.Errorf("failed to resolve attendee: %w", err)
	}

	if target.Role == persistence.RoleAuthor {
		return forbidden(CodeAuthorPermissionSet, "author permission cannot be modified")
	}

	if err := s.attendees.UpdateAttendeePermission(ctx, target.ID, params.Permission); err != nil {
		return fmt.Errorf("failed to update permission: %w", err)
	}

	logger.InfoContext(ctx, "attendee permission updated", "attendee_id", target.ID, "permission", string(params.Permission))
	return nil
}

// Leave removes the caller's own membership. The author may never leave; they
// must delete the schedule instead.
func (s *AttendeeService) Leave(ctx context.Context, scheduleID, memberID string) error {
	logger := serviceLogger(ctx, s.logger, "attendee", "leave", "schedule_id", scheduleID)

	attendee, err := s.attendees.GetAttendeeByMember(ctx, scheduleID, memberID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			// Absence of membership is an access violation, not a missing
			// resource: the schedule itself may well exist.
			return forbidden(CodeNotParticipant, "not a participant of this schedule")
		}
		return fmt.Errorf("failed to resolve attendee: %w", err)
	}

	if attendee.Role == persistence.RoleAuthor {
		return forbidden(CodeAuthorLocked, "author cannot leave; delete the schedule instead")
	}

	if err := s.attendees.DeleteAttendee(ctx, attendee.ID); err != nil {
		return fmt.Errorf("failed to delete attendee: %w", err)
	}

	logger.InfoContext(ctx, "attendee left", "attendee_id", attendee.ID)
	return nil
}

// Remove deletes a guest from the roster on behalf of the author. The author
// record itself can never be removed.
func (s *AttendeeService) Remove(ctx context.Context, params RemoveAttendeeParams) error {
	logger := serviceLogger(ctx, s.logger, "attendee", "remove", "schedule_id", params.ScheduleID)

	if err := s.requireAuthor(ctx, params.ScheduleID, params.RequesterMemberID); err != nil {
		return err
	}

	target, err := s.attendees.GetAttendee(ctx, params.ScheduleID, params.AttendeeID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return notFound(CodeAttendeeNotFound, "attendee not found")
		}
		return fmt.Errorf("failed to resolve attendee: %w", err)
	}

	if target.Role == persistence.RoleAuthor {
		return forbidden(CodeAuthorLocked, "author cannot be removed")
	}

	if err := s.attendees.DeleteAttendee(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to delete attendee: %w", err)
	}

	logger.InfoContext(ctx, "attendee removed", "attendee_id", target.ID)
	return nil
}

// List returns the roster for a schedule, author first.
func (s *AttendeeService) List(ctx context.Context, scheduleID string) ([]persistence.Attendee, error) {
	attendees, err := s.attendees.ListAttendees(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	return attendees, nil
}

// requireAuthor resolves the requester's attendee record and fails unless it
// carries the AUTHOR role. A requester with no record at all is treated the
// same as a non-author.
func (s *AttendeeService) requireAuthor(ctx context.Context, scheduleID, memberID string) error {
	attendee, err := s.attendees.GetAttendeeByMember(ctx, scheduleID, memberID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return forbidden(CodeNotAuthor, "only the schedule author may do this")
		}
		return fmt.Errorf("failed to resolve requester: %w", err)
	}
	if attendee.Role != persistence.RoleAuthor {
		return forbidden(CodeNotAuthor, "only the schedule author may do this")
	}
	return nil
}
