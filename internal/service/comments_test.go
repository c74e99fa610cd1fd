package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
	"github.com/usyj/makgora-client/internal/session"
)

// memSessionStore keeps sessions in memory for service tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *memSessionStore) Put(_ context.Context, sess domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memSessionStore) Touch(context.Context, string) error { return nil }

// commentBackend fakes the comment endpoints and records mutations.
type commentBackend struct {
	mu      sync.Mutex
	tree    []domain.Comment
	deletes int
	updates int
}

func (b *commentBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comments", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(b.tree)
	})
	mux.HandleFunc("GET /articles/{id}/comments", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(b.tree)
	})
	mux.HandleFunc("DELETE /comments/{id}", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.deletes++
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("PUT /articles/comments/{id}", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		b.updates++
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(domain.Comment{ID: 5})
	})
	return mux
}

func newCommentFixture(t *testing.T, backend *commentBackend, viewer domain.User) (*CommentService, string) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	logger := slog.New(slog.DiscardHandler)
	sessions := session.NewManager(newMemSessionStore(), logger)
	sess, err := sessions.Create(context.Background(), domain.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &viewer,
	})
	require.NoError(t, err)

	clients := NewClients(srv.URL, 5*time.Second, sessions)
	return NewCommentService(clients, sessions, logger), sess.ID
}

func TestDeleteRejectsForeignComment(t *testing.T) {
	backend := &commentBackend{tree: []domain.Comment{
		{ID: 5, UserID: 7, Nickname: "owner", Content: "mine"},
	}}
	svc, sessionID := newCommentFixture(t, backend, domain.User{ID: 9, Nickname: "viewer"})

	_, err := svc.Delete(context.Background(), sessionID, domain.CommentTargetVote, 1, 5)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, backend.deletes, "foreign delete must not reach the backend")
}

func TestDeleteAllowsOwnComment(t *testing.T) {
	backend := &commentBackend{tree: []domain.Comment{
		{ID: 5, UserID: 7, Nickname: "owner", Content: "mine"},
	}}
	svc, sessionID := newCommentFixture(t, backend, domain.User{ID: 7, Nickname: "owner"})

	thread, err := svc.Delete(context.Background(), sessionID, domain.CommentTargetVote, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.deletes)
	require.Len(t, thread.Roots, 1)
	assert.True(t, thread.Roots[0].Own)
}

func TestDeleteChecksOwnershipInReplies(t *testing.T) {
	backend := &commentBackend{tree: []domain.Comment{
		{ID: 5, UserID: 9, Content: "root", Children: []domain.Comment{
			{ID: 6, UserID: 7, Content: "someone else's reply"},
		}},
	}}
	svc, sessionID := newCommentFixture(t, backend, domain.User{ID: 9})

	_, err := svc.Delete(context.Background(), sessionID, domain.CommentTargetVote, 1, 6)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, backend.deletes)
}

func TestUpdateArticleCommentRejectsForeign(t *testing.T) {
	backend := &commentBackend{tree: []domain.Comment{
		{ID: 5, UserID: 7, Content: "original"},
	}}
	svc, sessionID := newCommentFixture(t, backend, domain.User{ID: 9})

	_, err := svc.UpdateArticleComment(context.Background(), sessionID, 3, 5, "edited")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, backend.updates)
}

func TestDeleteRequiresSignIn(t *testing.T) {
	backend := &commentBackend{}
	svc, _ := newCommentFixture(t, backend, domain.User{ID: 9})

	_, err := svc.Delete(context.Background(), "", domain.CommentTargetVote, 1, 5)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, backend.deletes)
}
