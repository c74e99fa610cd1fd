package makgora

import (
	"context"
	"fmt"

	"github.com/usyj/makgora-client/internal/domain"
)

// Register creates a new account and returns the issued token pair.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.TokenPair, error) {
	var out domain.TokenPair
	if err := c.post(ctx, "/auth/register", req, &out); err != nil {
		return domain.TokenPair{}, fmt.Errorf("register: %w", err)
	}
	return out, nil
}

// Login exchanges credentials for a token pair plus the user profile.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenPair, error) {
	var out domain.TokenPair
	if err := c.post(ctx, "/auth/login", req, &out); err != nil {
		return domain.TokenPair{}, fmt.Errorf("login: %w", err)
	}
	return out, nil
}

// Logout revokes the refresh token server-side.
func (c *Client) Logout(ctx context.Context, userID int64) error {
	if err := c.post(ctx, fmt.Sprintf("/auth/logout/%d", userID), nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Refresh exchanges a refresh token for a new access token. This is the
// explicit variant used at startup rehydration; mid-session refresh is
// handled inside the transport.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.post(ctx, "/auth/refresh", body, &out); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return out.AccessToken, nil
}

// Me returns the authenticated user's full profile ("who am I").
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/user/me", nil, &out); err != nil {
		return domain.User{}, fmt.Errorf("me: %w", err)
	}
	return out, nil
}
