package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/usyj/makgora-client/internal/domain"
)

// Claims is the subset of the backend's JWT payload the gateway reads. The
// token is never verified here; signature checks belong to the backend.
// Claims only seed a provisional identity until /user/me answers.
type Claims struct {
	Subject  string `json:"sub"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	Exp      int64  `json:"exp"`
}

// ParseClaims decodes the payload segment of a JWT without verifying it.
func ParseClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("session: malformed token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, fmt.Errorf("session: decode token payload: %w", err)
	}
	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return Claims{}, fmt.Errorf("session: parse token payload: %w", err)
	}
	return c, nil
}

// Expired reports whether the token's exp claim has passed.
func (c Claims) Expired(now time.Time) bool {
	return c.Exp != 0 && now.Unix() >= c.Exp
}

// User converts the claims into a provisional profile. The subject is the
// numeric user id on this backend.
func (c Claims) User() domain.User {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return domain.User{
		ID:       id,
		Nickname: c.Nickname,
		Role:     domain.Role(c.Role),
	}
}
