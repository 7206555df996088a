package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gnwofoke/portfolio-api/internal/service"
)

// AuthHandlers provides HTTP handlers for the token-based auth flow.
type AuthHandlers struct {
	Svc    *service.AuthService
	Logger *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Err: err})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("login failed", slog.Any("error", err))
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("login failed")})
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Verify reports whether the presented bearer token is still valid and
// returns the admin it belongs to.
func (h *AuthHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Err: errors.New("authentication required")})
		return
	}

	principal, err := h.Svc.Verify(r.Context(), token)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Err: errors.New("invalid or expired token")})
		return
	}

	WriteJSON(w, http.StatusOK, principal)
}

// Logout revokes the session behind the presented token. Logging out with
// an unknown token still succeeds.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Logout(r.Context(), BearerToken(r)); err != nil {
		if h.Logger != nil {
			h.Logger.Error("logout failed", slog.Any("error", err))
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Err: errors.New("logout failed")})
		return
	}
	WriteJSON(w, http.StatusOK, nil)
}
