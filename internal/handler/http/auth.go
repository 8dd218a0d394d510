package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staffbook/staffbook-backend-go/internal/domain/auth"
	"github.com/staffbook/staffbook-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	RefreshSession(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged in", resp)
}

// GetSession implements AuthHandler.
func (h *AuthHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.authService.LoadSession(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"session_id": session.ID,
		"expires_at": session.ExpiresAt.Unix(),
	})
}

// RefreshSession implements AuthHandler.
func (h *AuthHandlerImpl) RefreshSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.authService.SaveSession(r.Context(), sessionID)
	if err != nil {
		slog.Error("RefreshSession service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"session_id": session.ID,
		"expires_at": session.ExpiresAt.Unix(),
	})
}

// Logout implements AuthHandler.
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.authService.ClearSession(r.Context(), sessionID); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}
