package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/travel-planner/internal/application"
	"github.com/example/travel-planner/internal/persistence"
)

type memberService interface {
	Create(ctx context.Context, params application.CreateMemberParams) (persistence.Member, error)
	Get(ctx context.Context, id string) (persistence.Member, error)
}

// MemberHandler exposes the member registry.
type MemberHandler struct {
	members   memberService
	responder responder
}

// NewMemberHandler constructs the handler.
func NewMemberHandler(members memberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, responder: newResponder(logger)}
}

type createMemberRequest struct {
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type memberResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Create handles POST /members.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	member, err := h.members.Create(r.Context(), application.CreateMemberParams{
		Email:     req.Email,
		Nickname:  req.Nickname,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toMemberResponse(member))
}

// Get handles GET /members/{memberID}.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(chi.URLParam(r, "memberID"))
	if memberID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMemberID)
		return
	}

	member, err := h.members.Get(r.Context(), memberID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMemberResponse(member))
}

func toMemberResponse(member persistence.Member) memberResponse {
	return memberResponse{
		ID:        member.ID,
		Email:     member.Email,
		Nickname:  member.Nickname,
		AvatarURL: member.AvatarURL,
		CreatedAt: member.CreatedAt,
	}
}
