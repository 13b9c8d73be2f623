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
	"github.com/example/travel-planner/internal/chatstore"
)

type chatService interface {
	Send(ctx context.Context, params application.SendChatMessageParams) (chatstore.Message, error)
	GetPage(ctx context.Context, scheduleID string, page int) ([]application.ChatMessageView, error)
}

// ChatHandler exposes the schedule chat channel.
type ChatHandler struct {
	chat      chatService
	responder responder
}

// NewChatHandler constructs the handler.
func NewChatHandler(chat chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, responder: newResponder(logger)}
}

type sendMessageRequest struct {
	Nickname string `json:"nickname"`
	Text     string `json:"text"`
}

type chatMessageResponse struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Nickname  string    `json:"nickname,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Text      string    `json:"text"`
	SentAt    time.Time `json:"sent_at"`
}

// Send handles POST /schedules/{scheduleID}/chats.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	message, err := h.chat.Send(r.Context(), application.SendChatMessageParams{
		ScheduleID:     scheduleID,
		SenderNickname: req.Nickname,
		Text:           req.Text,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, chatMessageResponse{
		ID:       message.ID,
		SenderID: message.SenderID,
		Text:     message.Text,
		SentAt:   message.CreatedAt,
	})
}

// GetPage handles GET /schedules/{scheduleID}/chats.
func (h *ChatHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	scheduleID := strings.TrimSpace(chi.URLParam(r, "scheduleID"))
	if scheduleID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	views, err := h.chat.GetPage(r.Context(), scheduleID, queryInt(r, "page", 0))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	out := make([]chatMessageResponse, 0, len(views))
	for _, view := range views {
		out = append(out, chatMessageResponse{
			ID:        view.MessageID,
			SenderID:  view.SenderID,
			Nickname:  view.Nickname,
			AvatarURL: view.AvatarURL,
			Text:      view.Text,
			SentAt:    view.SentAt,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, out)
}
