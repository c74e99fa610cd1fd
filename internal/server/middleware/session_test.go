package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	known map[string]bool
}

func (f *fakeResolver) Exists(_ context.Context, id string) bool {
	return f.known[id]
}

func resolveThrough(t *testing.T, resolver SessionResolver, mutate func(*http.Request)) string {
	t.Helper()

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionID(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/votes", nil)
	mutate(req)
	Session(resolver, "makgora_session")(next).ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestSessionFromCookie(t *testing.T) {
	resolver := &fakeResolver{known: map[string]bool{"sess-1": true}}
	got := resolveThrough(t, resolver, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "makgora_session", Value: "sess-1"})
	})
	assert.Equal(t, "sess-1", got)
}

func TestSessionFromHeader(t *testing.T) {
	resolver := &fakeResolver{known: map[string]bool{"sess-2": true}}
	got := resolveThrough(t, resolver, func(r *http.Request) {
		r.Header.Set("X-Session-Id", "sess-2")
	})
	assert.Equal(t, "sess-2", got)
}

func TestSessionCookieWinsOverHeader(t *testing.T) {
	resolver := &fakeResolver{known: map[string]bool{"from-cookie": true, "from-header": true}}
	got := resolveThrough(t, resolver, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "makgora_session", Value: "from-cookie"})
		r.Header.Set("X-Session-Id", "from-header")
	})
	assert.Equal(t, "from-cookie", got)
}

func TestSessionUnknownIDIsAnonymous(t *testing.T) {
	resolver := &fakeResolver{known: map[string]bool{}}
	got := resolveThrough(t, resolver, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "makgora_session", Value: "stale"})
	})
	assert.Empty(t, got)
}

func TestSessionAbsentIsAnonymous(t *testing.T) {
	resolver := &fakeResolver{known: map[string]bool{}}
	got := resolveThrough(t, resolver, func(*http.Request) {})
	assert.Empty(t, got)
}
