package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// AuthService handles sign-in, sign-up and session lifecycle.
type AuthService struct {
	clients  *Clients
	sessions *session.Manager
	log      *slog.Logger
}

// NewAuthService wires an AuthService.
func NewAuthService(clients *Clients, sessions *session.Manager, logger *slog.Logger) *AuthService {
	return &AuthService{
		clients:  clients,
		sessions: sessions,
		log:      logger.With("component", "auth"),
	}
}

// Login exchanges credentials for a token pair and opens a session. The
// canonical profile is fetched right after so the session never relies on
// login-response or token-payload fields alone.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	pair, err := s.clients.Anonymous().Login(ctx, req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth: login: %w", err)
	}

	sess, err := s.sessions.Create(ctx, pair)
	if err != nil {
		return domain.Session{}, err
	}

	user, err := s.clients.For(sess.ID).Me(ctx)
	if err != nil {
		// The session is usable without the canonical profile; keep the
		// provisional one and let the next request repair it.
		s.log.Warn("profile fetch after login failed", "error", err)
		return sess, nil
	}
	if err := s.sessions.UpdateUser(ctx, sess.ID, user); err != nil {
		return domain.Session{}, err
	}
	sess.User = user
	return sess, nil
}

// Register creates an account. The caller signs in separately afterwards.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	pair, err := s.clients.Anonymous().Register(ctx, req)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: register: %w", err)
	}
	if pair.User == nil {
		return domain.User{}, nil
	}
	return *pair.User, nil
}

// Logout revokes the backend refresh token and drops the session. The
// session is invalidated even when the backend call fails, so a dead
// backend cannot pin a session alive.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.clients.For(sessionID).Logout(ctx, sess.User.ID); err != nil {
		s.log.Warn("backend logout failed", "session_id", sessionID, "error", err)
	}
	s.clients.Drop(sessionID)
	return s.sessions.Invalidate(ctx, sessionID)
}

// Current returns the session with a freshly fetched profile. Unknown or
// expired sessions surface domain.ErrSessionExpired.
func (s *AuthService) Current(ctx context.Context, sessionID string) (domain.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, domain.ErrSessionExpired
	}

	user, err := s.clients.For(sessionID).Me(ctx)
	if err != nil {
		if domain.IsStatus(err, 401) {
			return domain.Session{}, domain.ErrSessionExpired
		}
		return domain.Session{}, fmt.Errorf("auth: fetch profile: %w", err)
	}
	if err := s.sessions.UpdateUser(ctx, sessionID, user); err != nil {
		return domain.Session{}, err
	}
	sess.User = user

	_ = s.sessions.Touch(ctx, sessionID)
	return sess, nil
}
