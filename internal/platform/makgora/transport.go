package makgora

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// TokenSource supplies the bearer tokens for outgoing requests and accepts
// rotations performed by the refresh transport. Implementations are the
// in-memory session container (gateway) and the state file (makgoractl).
type TokenSource interface {
	// AccessToken returns the current access token, or "" when signed out.
	AccessToken(ctx context.Context) string
	// RefreshToken returns the stored refresh token, or "" when absent.
	RefreshToken(ctx context.Context) string
	// RotateAccess persists a newly issued access token.
	RotateAccess(ctx context.Context, accessToken string) error
	// Invalidate clears all stored session state; the user must log in again.
	Invalidate(ctx context.Context) error
}

// refreshTransport injects the Authorization header on every request and
// transparently recovers from an expired access token: a 401 response to a
// request that has not already been replayed triggers a single call to the
// refresh endpoint, after which the original request is replayed exactly
// once with the new token. A 401 on the replayed request, or any refresh
// failure, invalidates the token source so the caller sees the original
// unauthorized response and forces a re-login.
type refreshTransport struct {
	baseURL string
	next    http.RoundTripper
	tokens  TokenSource

	// mu serialises refreshes so concurrent 401s trigger one refresh call.
	mu sync.Mutex
}

func newRefreshTransport(baseURL string, next http.RoundTripper, ts TokenSource) *refreshTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &refreshTransport{
		baseURL: baseURL,
		next:    next,
		tokens:  ts,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token := t.tokens.AccessToken(ctx)
	authed := t.clone(req, token)

	resp, err := t.next.RoundTrip(authed)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Expired access token. One refresh, one replay; never loops because
	// the replayed response is returned as-is below.
	newToken, refreshErr := t.refresh(ctx, token)
	if refreshErr != nil {
		_ = t.tokens.Invalidate(ctx)
		return resp, nil
	}
	drainAndClose(resp.Body)

	replay, err := t.replayable(req, newToken)
	if err != nil {
		return nil, err
	}

	resp, err = t.next.RoundTrip(replay)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// The fresh token was rejected too; give up on this session.
		_ = t.tokens.Invalidate(ctx)
	}
	return resp, nil
}

// refresh exchanges the stored refresh token for a new access token. The
// staleToken guard means that when several in-flight requests hit 401 at
// once, only the first performs the HTTP call; the rest reuse its result.
func (t *refreshTransport) refresh(ctx context.Context, staleToken string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Another request may have refreshed while we waited on the lock.
	if current := t.tokens.AccessToken(ctx); current != "" && current != staleToken {
		return current, nil
	}

	refreshToken := t.tokens.RefreshToken(ctx)
	if refreshToken == "" {
		return "", fmt.Errorf("makgora: no refresh token stored")
	}

	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", fmt.Errorf("makgora: marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("makgora: create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// The refresh call goes through the bare transport: it must not carry
	// the stale access token and must never trigger another refresh.
	client := &http.Client{Transport: t.next, Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("makgora: refresh token: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("makgora: refresh token: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("makgora: decode refresh response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("makgora: refresh response carried no access token")
	}

	if err := t.tokens.RotateAccess(ctx, payload.AccessToken); err != nil {
		return "", fmt.Errorf("makgora: persist rotated token: %w", err)
	}
	return payload.AccessToken, nil
}

// clone shallow-copies the request and sets the Authorization header. The
// original request body is consumed by the first attempt, so the clone for
// the initial send keeps the original body.
func (t *refreshTransport) clone(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	return out
}

// replayable rebuilds the request body from GetBody for the retry. Requests
// built by http.NewRequest with a bytes.Reader always have GetBody set;
// streaming bodies cannot be replayed and fail explicitly.
func (t *refreshTransport) replayable(req *http.Request, token string) (*http.Request, error) {
	out := t.clone(req, token)
	if req.Body == nil || req.GetBody == nil {
		if req.Body != nil {
			return nil, fmt.Errorf("makgora: cannot replay request with streaming body")
		}
		return out, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("makgora: reconstruct request body: %w", err)
	}
	out.Body = body
	return out, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
