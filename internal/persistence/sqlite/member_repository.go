package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/travel-planner/internal/persistence"
)

// MemberRepository implements persistence.MemberRepository using SQLite.
type MemberRepository struct {
	pool *ConnectionPool
}

// NewMemberRepository creates a SQLite-backed member repository.
func NewMemberRepository(pool *ConnectionPool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// CreateMember inserts a new member registry entry.
func (r *MemberRepository) CreateMember(ctx context.Context, member persistence.Member) error {
	if member.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO members (id, email, nickname, avatar_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		member.ID,
		member.Email,
		member.Nickname,
		member.AvatarURL,
		member.CreatedAt.UTC().Format(time.RFC3339Nano),
		member.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	return mapError(err)
}

// GetMember retrieves a member by id.
func (r *MemberRepository) GetMember(ctx context.Context, id string) (persistence.Member, error) {
	row := r.pool.db.QueryRowContext(ctx, memberSelect+" WHERE id = ?", id)
	return scanMember(row)
}

// GetMemberByEmail retrieves a member by email address.
func (r *MemberRepository) GetMemberByEmail(ctx context.Context, email string) (persistence.Member, error) {
	row := r.pool.db.QueryRowContext(ctx, memberSelect+" WHERE email = ?", email)
	return scanMember(row)
}

// GetMemberByNickname retrieves a member by nickname.
func (r *MemberRepository) GetMemberByNickname(ctx context.Context, nickname string) (persistence.Member, error) {
	row := r.pool.db.QueryRowContext(ctx, memberSelect+" WHERE nickname = ?", nickname)
	return scanMember(row)
}

// ListMembersByIDs returns the members matching the given ids. Missing ids are
// simply absent from the result; callers handle partial resolution.
func (r *MemberRepository) ListMembersByIDs(ctx context.Context, ids []string) ([]persistence.Member, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.pool.db.QueryContext(ctx,
		fmt.Sprintf("%s WHERE id IN (%s) ORDER BY id", memberSelect, placeholders), args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var members []persistence.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, mapError(rows.Err())
}

const memberSelect = "SELECT id, email, nickname, avatar_url, created_at, updated_at FROM members"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (persistence.Member, error) {
	var member persistence.Member
	var createdAt, updatedAt string
	if err := row.Scan(&member.ID, &member.Email, &member.Nickname, &member.AvatarURL, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return persistence.Member{}, persistence.ErrNotFound
		}
		return persistence.Member{}, mapError(err)
	}

	var err error
	if member.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return persistence.Member{}, err
	}
	if member.UpdatedAt, err = parseStoredTime(updatedAt); err != nil {
		return persistence.Member{}, err
	}
	return member, nil
}

func parseStoredTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: invalid stored timestamp %q: %w", value, err)
	}
	return t, nil
}
