package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	touched  int
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]domain.Session)}
}

func (s *memStore) Put(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memStore) Touch(_ context.Context, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched++
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testToken(t *testing.T, sub string) string {
	t.Helper()
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf(`{"sub":%q,"nickname":"tester","role":"USER","exp":%d}`,
			sub, time.Now().Add(time.Hour).Unix())))
	return "eyJhbGciOiJIUzI1NiJ9." + payload + ".sig"
}

func TestCreateUsesLoginProfile(t *testing.T) {
	m := NewManager(newMemStore(), testLogger())

	sess, err := m.Create(context.Background(), domain.TokenPair{
		AccessToken:  "acc",
		RefreshToken: "ref",
		User:         &domain.User{ID: 7, Nickname: "alpha"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, int64(7), sess.User.ID)
	assert.True(t, sess.Authenticated())
}

func TestCreateFallsBackToClaims(t *testing.T) {
	m := NewManager(newMemStore(), testLogger())

	sess, err := m.Create(context.Background(), domain.TokenPair{
		AccessToken:  testToken(t, "42"),
		RefreshToken: "ref",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), sess.User.ID)
	assert.Equal(t, "tester", sess.User.Nickname)
}

func TestGetFallsBackToStore(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, testLogger())
	sess, err := m.Create(context.Background(), domain.TokenPair{AccessToken: "acc"})
	require.NoError(t, err)

	// Simulate a restart: fresh manager over the same store.
	m2 := NewManager(store, testLogger())
	got, err := m2.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "acc", got.AccessToken)
}

func TestRotateAccessPersists(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, testLogger())
	sess, err := m.Create(context.Background(), domain.TokenPair{AccessToken: "old", RefreshToken: "ref"})
	require.NoError(t, err)

	require.NoError(t, m.RotateAccess(context.Background(), sess.ID, "new"))

	got, err := m.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
	assert.Equal(t, "ref", got.RefreshToken)

	stored, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.AccessToken)
}

func TestInvalidateRemovesEverywhere(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, testLogger())
	sess, err := m.Create(context.Background(), domain.TokenPair{AccessToken: "acc"})
	require.NoError(t, err)

	require.NoError(t, m.Invalidate(context.Background(), sess.ID))

	_, err = m.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTokenSource(t *testing.T) {
	m := NewManager(newMemStore(), testLogger())
	sess, err := m.Create(context.Background(), domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"})
	require.NoError(t, err)

	src := m.TokenSource(sess.ID)
	assert.Equal(t, "acc", src.AccessToken(context.Background()))
	assert.Equal(t, "ref", src.RefreshToken(context.Background()))

	require.NoError(t, src.RotateAccess(context.Background(), "acc2"))
	assert.Equal(t, "acc2", src.AccessToken(context.Background()))

	require.NoError(t, src.Invalidate(context.Background()))
	assert.Empty(t, src.AccessToken(context.Background()))
}

func TestParseClaims(t *testing.T) {
	claims, err := ParseClaims(testToken(t, "99"))
	require.NoError(t, err)
	assert.Equal(t, "99", claims.Subject)
	assert.False(t, claims.Expired(time.Now()))

	_, err = ParseClaims("not-a-token")
	assert.Error(t, err)
}
