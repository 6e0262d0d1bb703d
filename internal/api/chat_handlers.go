package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wiet32522/LSCgambling/internal/repos/chatmessages"
)

type chatPostRequest struct {
	UserID   string `json:"userId"   validate:"required"`
	Username string `json:"username" validate:"required"`
	Text     string `json:"text"     validate:"required"`
}

// ChatPostHandler handles POST /chat.
func (h *HandlerProvider) ChatPostHandler(w http.ResponseWriter, r *http.Request) {
	var req chatPostRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "User ID, username, and message text are required.")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "User ID, username, and message text are required.")
		return
	}

	_, err = h.chat.Post(r.Context(), userID, req.Username, req.Text)
	if err != nil {
		slog.Error("chat post failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to send message.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent.",
	})
}

// ChatHistoryHandler handles GET /chat_history.
func (h *HandlerProvider) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.chat.History(r.Context())
	if err != nil {
		slog.Error("chat history failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to retrieve chat history.")
		return
	}

	if msgs == nil {
		msgs = []chatmessages.Message{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"messages": msgs,
	})
}
