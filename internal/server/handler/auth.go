package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/server/middleware"
)

// AuthService defines what the auth handler needs from the service layer.
type AuthService interface {
	Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error)
	Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (domain.Session, error)
}

// CookieConfig controls the session cookie the gateway issues.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// AuthHandler serves sign-in, sign-up and session endpoints.
type AuthHandler struct {
	auth   AuthService
	cookie CookieConfig
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthService, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie, logger: logger}
}

// sessionResponse is what login and session endpoints return. Tokens stay
// inside the gateway; clients only ever see the opaque session id.
type sessionResponse struct {
	SessionID string      `json:"sessionId"`
	User      domain.User `json:"user"`
}

// Login authenticates against the backend and issues a session cookie.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LoginID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "loginId and password are required")
		return
	}

	sess, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.setCookie(w, sess.ID)
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, User: sess.User})
}

// Register creates an account.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LoginID == "" || req.Password == "" || req.Nickname == "" {
		writeError(w, http.StatusBadRequest, "loginId, password and nickname are required")
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Logout revokes the session and clears the cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r)
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	if err := h.auth.Logout(r.Context(), sessionID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	h.clearCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Session returns the current session with a fresh profile.
// GET /api/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r)
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	sess, err := h.auth.Current(r.Context(), sessionID)
	if err != nil {
		h.clearCookie(w)
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, User: sess.User})
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
