package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wiet32522/LSCgambling/internal/repos/accounts"
	"github.com/wiet32522/LSCgambling/internal/services/auth"
)

type authRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Type     string `json:"type"     validate:"required,oneof=register login"`
}

// AuthHandler handles POST /auth; the "type" field switches between
// registration and login, mirroring the frontend's single auth call.
func (h *HandlerProvider) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req authRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Username, password, and type (login/register) are required.")
		return
	}

	switch req.Type {
	case "register":
		h.register(w, r, req)
	case "login":
		h.login(w, r, req)
	}
}

func (h *HandlerProvider) register(w http.ResponseWriter, r *http.Request, req authRequest) {
	_, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrUsernameTaken) {
			writeFailure(w, http.StatusConflict, "Username already exists.")
			return
		}

		slog.Error("registration failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Registration successful. Please log in.",
	})
}

func (h *HandlerProvider) login(w http.ResponseWriter, r *http.Request, req authRequest) {
	acc, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown username and wrong password answer identically.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeFailure(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}

		slog.Error("login failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to log in.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful.",
		"user":    userPayload(acc),
	})
}

type userDataRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// UserDataHandler handles POST /user_data.
func (h *HandlerProvider) UserDataHandler(w http.ResponseWriter, r *http.Request) {
	var req userDataRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "User ID is required.")
		return
	}

	acc, err := h.fetcher.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			writeFailure(w, http.StatusNotFound, "User not found.")
			return
		}

		slog.Error("fetch user data failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to fetch user data.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    userPayload(acc),
	})
}
