// Package session owns the gateway's authentication state: one Session per
// signed-in user, held in memory for speed and mirrored to a SessionStore
// so sign-ins survive restarts.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/usyj/makgora-client/internal/domain"
)

// Manager creates, looks up and invalidates sessions. All methods are safe
// for concurrent use.
type Manager struct {
	store domain.SessionStore
	log   *slog.Logger

	mu   sync.RWMutex
	live map[string]domain.Session
}

// NewManager wires a manager over the given store.
func NewManager(store domain.SessionStore, logger *slog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   logger.With("component", "session"),
		live:  make(map[string]domain.Session),
	}
}

// Create mints a session for a fresh token pair and persists it. The user
// profile comes along when the login response carried one; otherwise the
// caller is expected to overwrite it with a /user/me fetch.
func (m *Manager) Create(ctx context.Context, pair domain.TokenPair) (domain.Session, error) {
	now := time.Now().UTC()
	sess := domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if pair.User != nil {
		sess.User = *pair.User
	} else if claims, err := ParseClaims(pair.AccessToken); err == nil {
		// Provisional identity from the token payload; the auth service
		// replaces it with the canonical profile right after.
		sess.User = claims.User()
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("session: persist: %w", err)
	}
	m.mu.Lock()
	m.live[sess.ID] = sess
	m.mu.Unlock()

	m.log.Info("session created", "session_id", sess.ID, "user_id", sess.User.ID)
	return sess, nil
}

// Get returns a session by id, falling back to the store when the gateway
// restarted since it was created.
func (m *Manager) Get(ctx context.Context, id string) (domain.Session, error) {
	m.mu.RLock()
	sess, ok := m.live[id]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("session: load %s: %w", id, err)
	}
	m.mu.Lock()
	m.live[id] = sess
	m.mu.Unlock()
	return sess, nil
}

// Exists reports whether a session id refers to a live session.
func (m *Manager) Exists(ctx context.Context, id string) bool {
	_, err := m.Get(ctx, id)
	return err == nil
}

// RotateAccess swaps the access token after a refresh. The refresh token is
// left untouched; the backend does not rotate it.
func (m *Manager) RotateAccess(ctx context.Context, id, accessToken string) error {
	m.mu.Lock()
	sess, ok := m.live[id]
	if ok {
		sess.AccessToken = accessToken
		sess.UpdatedAt = time.Now().UTC()
		m.live[id] = sess
	}
	m.mu.Unlock()
	if !ok {
		var err error
		if sess, err = m.Get(ctx, id); err != nil {
			return err
		}
		sess.AccessToken = accessToken
		sess.UpdatedAt = time.Now().UTC()
		m.mu.Lock()
		m.live[id] = sess
		m.mu.Unlock()
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return fmt.Errorf("session: persist rotated token: %w", err)
	}
	m.log.Debug("access token rotated", "session_id", id)
	return nil
}

// UpdateUser replaces the cached profile, typically after /user/me or a
// profile edit.
func (m *Manager) UpdateUser(ctx context.Context, id string, user domain.User) error {
	m.mu.Lock()
	sess, ok := m.live[id]
	if ok {
		sess.User = user
		sess.UpdatedAt = time.Now().UTC()
		m.live[id] = sess
	}
	m.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	if err := m.store.Put(ctx, sess); err != nil {
		return fmt.Errorf("session: persist profile: %w", err)
	}
	return nil
}

// Invalidate drops the session from memory and the store. Used on logout
// and whenever a token refresh fails.
func (m *Manager) Invalidate(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.live, id)
	m.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	m.log.Info("session invalidated", "session_id", id)
	return nil
}

// Touch extends the session's TTL in the store.
func (m *Manager) Touch(ctx context.Context, id string) error {
	return m.store.Touch(ctx, id)
}
