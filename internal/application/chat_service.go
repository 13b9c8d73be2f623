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

// DefaultChatPageSize is used when the service is constructed without an
// explicit page size.
const DefaultChatPageSize = 30

const unknownNickname = "(unknown)"

// ChatService authorizes message sends and assembles display-ready message
// pages with resolved sender profiles.
type ChatService struct {
	chats     chatstore.Store
	schedules persistence.ScheduleRepository
	attendees persistence.AttendeeRepository
	members   persistence.MemberRepository
	profiles  *profileCache
	pageSize  int
	now       func() time.Time
	logger    *slog.Logger
}

// NewChatService wires dependencies for the chat gateway.
func NewChatService(chats chatstore.Store, schedules persistence.ScheduleRepository, attendees persistence.AttendeeRepository, members persistence.MemberRepository, pageSize int, now func() time.Time, logger *slog.Logger) *ChatService {
	if pageSize <= 0 {
		pageSize = DefaultChatPageSize
	}
	if now == nil {
		now = time.Now
	}
	return &ChatService{
		chats:     chats,
		schedules: schedules,
		attendees: attendees,
		members:   members,
		profiles:  newProfileCache(time.Minute, 512, now),
		pageSize:  pageSize,
		now:       now,
		logger:    defaultLogger(logger),
	}
}

// Send persists a chat message after checking the sender attends the schedule
// with at least CHAT permission. The message id and timestamp are assigned
// server-side.
func (s *ChatService) Send(ctx context.Context, params SendChatMessageParams) (chatstore.Message, error) {
	logger := serviceLogger(ctx, s.logger, "chat", "send", "schedule_id", params.ScheduleID)

	if strings.TrimSpace(params.Text) == "" {
		vErr := &ValidationError{}
		vErr.add("text", "message text is required")
		return chatstore.Message{}, vErr
	}

	if _, err := s.schedules.GetSchedule(ctx, params.ScheduleID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return chatstore.Message{}, notFound(CodeScheduleNotFound, "schedule not found")
		}
		return chatstore.Message{}, fmt.Errorf("failed to resolve schedule: %w", err)
	}

	sender, err := s.members.GetMemberByNickname(ctx, params.SenderNickname)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return chatstore.Message{}, notFound(CodeMemberNotFound, "member not found")
		}
		return chatstore.Message{}, fmt.Errorf("failed to resolve sender: %w", err)
	}

	attendee, err := s.attendees.GetAttendeeByMember(ctx, params.ScheduleID, sender.ID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return chatstore.Message{}, forbidden(CodeNotParticipant, "not a participant of this schedule")
		}
		return chatstore.Message{}, fmt.Errorf("failed to resolve attendee: %w", err)
	}
	if err := requirePermission(attendee, persistence.PermissionChat, CodeChatRequired, "chat permission required"); err != nil {
		return chatstore.Message{}, err
	}

	message, err := s.chats.Insert(ctx, chatstore.Message{
		ScheduleID: params.ScheduleID,
		SenderID:   sender.ID,
		Text:       params.Text,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return chatstore.Message{}, fmt.Errorf("failed to store message: %w", err)
	}

	logger.InfoContext(ctx, "chat message sent", "message_id", message.ID, "sender_id", sender.ID)
	return message, nil
}

// GetPage returns one page of chat messages, oldest first, with sender
// nickname and avatar resolved in a single registry call. A message whose
// sender no longer resolves keeps its place with a default profile; an absent
// profile never fails the page.
func (s *ChatService) GetPage(ctx context.Context, scheduleID string, page int) ([]ChatMessageView, error) {
	messages, err := s.chats.FindPage(ctx, scheduleID, page, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat page: %w", err)
	}
	if len(messages) == 0 {
		return nil, nil
	}

	profiles, err := s.resolveProfiles(ctx, messages)
	if err != nil {
		return nil, err
	}

	views := make([]ChatMessageView, 0, len(messages))
	for _, message := range messages {
		profile, ok := profiles[message.SenderID]
		if !ok {
			profile = senderProfile{Nickname: unknownNickname}
		}
		views = append(views, ChatMessageView{
			MessageID: message.ID,
			SenderID:  message.SenderID,
			Nickname:  profile.Nickname,
			AvatarURL: profile.AvatarURL,
			Text:      message.Text,
			SentAt:    message.CreatedAt,
		})
	}
	return views, nil
}

// resolveProfiles collects the distinct sender ids of the page and resolves
// their profiles, consulting the cache first and hitting the registry once
// for whatever is missing.
func (s *ChatService) resolveProfiles(ctx context.Context, messages []chatstore.Message) (map[string]senderProfile, error) {
	profiles := make(map[string]senderProfile)
	var missing []string
	seen := make(map[string]struct{})

	for _, message := range messages {
		if _, ok := seen[message.SenderID]; ok {
			continue
		}
		seen[message.SenderID] = struct{}{}

		if profile, ok := s.profiles.Get(message.SenderID); ok {
			profiles[message.SenderID] = profile
			continue
		}
		missing = append(missing, message.SenderID)
	}

	if len(missing) == 0 {
		return profiles, nil
	}

	members, err := s.members.ListMembersByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender profiles: %w", err)
	}
	for _, member := range members {
		profile := senderProfile{Nickname: member.Nickname, AvatarURL: member.AvatarURL}
		profiles[member.ID] = profile
		s.profiles.Store(member.ID, profile)
	}
	return profiles, nil
}
