package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usyj/makgora-client/internal/domain"
)

type fakeAuthService struct {
	loginFn   func(ctx context.Context, req domain.LoginRequest) (domain.Session, error)
	currentFn func(ctx context.Context, sessionID string) (domain.Session, error)
	logoutFn  func(ctx context.Context, sessionID string) error
}

func (f *fakeAuthService) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	return domain.User{Nickname: req.Nickname}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx, sessionID)
	}
	return nil
}

func (f *fakeAuthService) Current(ctx context.Context, sessionID string) (domain.Session, error) {
	return f.currentFn(ctx, sessionID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testCookie() CookieConfig {
	return CookieConfig{Name: "makgora_session", Secure: false, TTL: 24 * time.Hour}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(_ context.Context, req domain.LoginRequest) (domain.Session, error) {
			assert.Equal(t, "duelist", req.LoginID)
			return domain.Session{
				ID:   "sess-1",
				User: domain.User{ID: 7, Nickname: "duelist", Points: 1000},
			}, nil
		},
	}
	h := NewAuthHandler(svc, testCookie(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"loginId":"duelist","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string      `json:"sessionId"`
		User      domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "duelist", resp.User.Nickname)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "makgora_session", cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, testCookie(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"loginId":"duelist"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginSurfacesBackendRejection(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(context.Context, domain.LoginRequest) (domain.Session, error) {
			return domain.Session{}, &domain.APIError{Status: http.StatusUnauthorized, Message: "bad credentials"}
		},
	}
	h := NewAuthHandler(svc, testCookie(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"loginId":"duelist","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bad credentials", resp["error"])
}

func TestSessionRequiresSignIn(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, testCookie(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
