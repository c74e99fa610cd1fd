package makgora

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
)

// memTokens is an in-memory TokenSource for transport tests.
type memTokens struct {
	mu          sync.Mutex
	access      string
	refresh     string
	invalidated bool
}

func (m *memTokens) AccessToken(context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *memTokens) RefreshToken(context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *memTokens) RotateAccess(_ context.Context, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = accessToken
	return nil
}

func (m *memTokens) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.invalidated = true
	return nil
}

func (m *memTokens) wasInvalidated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidated
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, WithTokenSource(tokens)), srv
}

func TestTransportAttachesBearerToken(t *testing.T) {
	tokens := &memTokens{access: "tok-1", refresh: "ref-1"}

	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.User{ID: 7, Nickname: "duelist"})
	})

	client, _ := newTestClient(t, mux, tokens)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestTransportRefreshesOnceAndReplays(t *testing.T) {
	tokens := &memTokens{access: "stale", refresh: "ref-1"}

	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{ID: 7, Nickname: "duelist"})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref-1", body["refreshToken"])
		// The refresh call must not carry the stale bearer token.
		assert.Empty(t, r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})

	client, _ := newTestClient(t, mux, tokens)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "duelist", user.Nickname)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, "fresh", tokens.AccessToken(context.Background()))
	assert.False(t, tokens.wasInvalidated())
}

func TestTransportReplaysRequestBody(t *testing.T) {
	tokens := &memTokens{access: "stale", refresh: "ref-1"}

	var bodies []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /votes/5/participate", func(w http.ResponseWriter, r *http.Request) {
		var req domain.ParticipateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		bodies = append(bodies, r.Header.Get("Authorization"))

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, int64(11), req.ChoiceID)
		assert.Equal(t, int64(250), req.Points)
		_ = json.NewEncoder(w).Encode(domain.Participation{HasParticipated: true, ChoiceID: req.ChoiceID, PointsBet: req.Points})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})

	client, _ := newTestClient(t, mux, tokens)

	part, err := client.Participate(context.Background(), 5, domain.ParticipateRequest{ChoiceID: 11, Points: 250})
	require.NoError(t, err)
	assert.Equal(t, int64(250), part.PointsBet)
	// First attempt with the stale token, replay with the fresh one.
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, bodies)
}

func TestTransportInvalidatesWhenRefreshFails(t *testing.T) {
	tokens := &memTokens{access: "stale", refresh: "ref-dead"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux, tokens)

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.True(t, tokens.wasInvalidated())
	assert.Empty(t, tokens.AccessToken(context.Background()))
}

func TestTransportInvalidatesWhenReplayRejected(t *testing.T) {
	tokens := &memTokens{access: "stale", refresh: "ref-1"}

	var meCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "fresh"})
	})

	client, _ := newTestClient(t, mux, tokens)

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	// Exactly one replay: the second 401 must not trigger another refresh.
	assert.Equal(t, int32(2), meCalls.Load())
	assert.True(t, tokens.wasInvalidated())
}

func TestTransportNoRefreshWithoutRefreshToken(t *testing.T) {
	tokens := &memTokens{access: "stale"}

	var refreshCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})

	client, _ := newTestClient(t, mux, tokens)

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(0), refreshCalls.Load())
	assert.True(t, tokens.wasInvalidated())
}

func TestClientSurfacesBackendMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /votes/9/participate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not enough points"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.Participate(context.Background(), 9, domain.ParticipateRequest{ChoiceID: 1, Points: 10})
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "not enough points", apiErr.Message)
}
