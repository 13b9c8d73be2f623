package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// MemberService manages the member registry. Profiles are read-mostly:
// everything beyond registration and lookup (credentials, sessions, account
// lifecycle) lives outside this system.
type MemberService struct {
	members     persistence.MemberRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMemberService wires dependencies for registry operations.
func NewMemberService(members persistence.MemberRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MemberService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &MemberService{
		members:     members,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// Create registers a member profile.
func (s *MemberService) Create(ctx context.Context, params CreateMemberParams) (persistence.Member, error) {
	logger := serviceLogger(ctx, s.logger, "member", "create")

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Email) == "" {
		vErr.add("email", "email is required")
	}
	if strings.TrimSpace(params.Nickname) == "" {
		vErr.add("nickname", "nickname is required")
	}
	if vErr.HasErrors() {
		return persistence.Member{}, vErr
	}

	createdAt := s.now()
	member := persistence.Member{
		ID:        s.idGenerator(),
		Email:     strings.TrimSpace(params.Email),
		Nickname:  strings.TrimSpace(params.Nickname),
		AvatarURL: params.AvatarURL,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := s.members.CreateMember(ctx, member); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return persistence.Member{}, conflict(CodeDuplicateProfile, "email or nickname already registered")
		}
		return persistence.Member{}, fmt.Errorf("failed to create member: %w", err)
	}

	logger.InfoContext(ctx, "member registered", "member_id", member.ID)
	return member, nil
}

// Get retrieves a member profile by id.
func (s *MemberService) Get(ctx context.Context, id string) (persistence.Member, error) {
	member, err := s.members.GetMember(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return persistence.Member{}, notFound(CodeMemberNotFound, "member not found")
		}
		return persistence.Member{}, fmt.Errorf("failed to resolve member: %w", err)
	}
	return member, nil
}
