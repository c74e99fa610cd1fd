package session

import "context"

// Tokens adapts one session to the platform client's token source. Each
// signed-in user gets their own platform client wired to one of these, so a
// refresh for one session never touches another.
type Tokens struct {
	manager *Manager
	id      string
}

// TokenSource returns the token source for a session id.
func (m *Manager) TokenSource(id string) *Tokens {
	return &Tokens{manager: m, id: id}
}

func (t *Tokens) AccessToken(ctx context.Context) string {
	sess, err := t.manager.Get(ctx, t.id)
	if err != nil {
		return ""
	}
	return sess.AccessToken
}

func (t *Tokens) RefreshToken(ctx context.Context) string {
	sess, err := t.manager.Get(ctx, t.id)
	if err != nil {
		return ""
	}
	return sess.RefreshToken
}

func (t *Tokens) RotateAccess(ctx context.Context, accessToken string) error {
	return t.manager.RotateAccess(ctx, t.id, accessToken)
}

func (t *Tokens) Invalidate(ctx context.Context) error {
	return t.manager.Invalidate(ctx, t.id)
}
