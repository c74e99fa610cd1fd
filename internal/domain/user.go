package domain

import "time"

// Role is the backend-assigned authorization level of a user.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsAdmin reports whether the role grants access to the admin console.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the client-held profile of a platform user. It mirrors the login
// response and GET /user/me.
type User struct {
	ID                int64  `json:"id"`
	LoginID           string `json:"loginId"`
	Nickname          string `json:"nickname"`
	Email             string `json:"email"`
	Level             int    `json:"level"`
	Points            int64  `json:"points"`
	Role              Role   `json:"role"`
	ProfileImage      string `json:"profileImage,omitempty"`
	ProfileBackground string `json:"profileBackground,omitempty"`
	AvatarIcon        string `json:"avatarIcon,omitempty"`
	ProfileFrame      string `json:"profileFrame,omitempty"`
	ProfileBadge      string `json:"profileBadge,omitempty"`
}

// LoginRequest is the credential payload for POST /auth/login.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// RegisterRequest is the signup payload for POST /auth/register.
type RegisterRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

// TokenPair is the backend's auth issuance response.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// ProfileUpdateRequest edits mutable profile fields.
type ProfileUpdateRequest struct {
	Nickname     string `json:"nickname,omitempty"`
	Email        string `json:"email,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// VoteActivity is one row of a user's recent vote history.
type VoteActivity struct {
	VoteID    int64     `json:"voteId"`
	Title     string    `json:"title"`
	Choice    string    `json:"choice"`
	PointsBet int64     `json:"pointsBet"`
	Result    string    `json:"result"`
	VotedAt   time.Time `json:"votedAt"`
}

// CommunityActivity is one row of a user's recent community history.
type CommunityActivity struct {
	PostID    int64     `json:"postId"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"` // "POST" or "COMMENT"
	CreatedAt time.Time `json:"createdAt"`
}

// AdminUserUpdateRequest edits a user from the admin console. Zero values
// are omitted so partial edits are safe.
type AdminUserUpdateRequest struct {
	Nickname string `json:"nickname,omitempty"`
	Email    string `json:"email,omitempty"`
	Points   *int64 `json:"points,omitempty"`
	Level    *int   `json:"level,omitempty"`
	Role     Role   `json:"role,omitempty"`
}
