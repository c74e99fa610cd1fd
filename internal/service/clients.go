// Package service composes the platform client, the session manager and the
// view packages into the operations the gateway surface exposes. Services
// never cache entity data: every read fetches fresh from the backend, and
// every mutation re-fetches the canonical state afterwards.
package service

import (
	"sync"
	"time"

	"github.com/usyj/makgora-client/internal/platform/makgora"
	"github.com/usyj/makgora-client/internal/session"
)

// Clients hands out platform clients. Each session gets its own client
// wired to that session's token source, so a 401-triggered refresh rotates
// only the owning session's tokens. Unauthenticated requests share one
// anonymous client.
type Clients struct {
	baseURL  string
	timeout  time.Duration
	sessions *session.Manager
	anon     *makgora.Client

	mu        sync.Mutex
	bySession map[string]*makgora.Client
}

// NewClients builds the client pool for one backend.
func NewClients(baseURL string, timeout time.Duration, sessions *session.Manager) *Clients {
	return &Clients{
		baseURL:   baseURL,
		timeout:   timeout,
		sessions:  sessions,
		anon:      makgora.NewClient(baseURL, timeout),
		bySession: make(map[string]*makgora.Client),
	}
}

// Anonymous returns the shared unauthenticated client.
func (c *Clients) Anonymous() *makgora.Client {
	return c.anon
}

// For returns the client bound to a session, creating it on first use. An
// empty session id yields the anonymous client.
func (c *Clients) For(sessionID string) *makgora.Client {
	if sessionID == "" {
		return c.anon
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	client, ok := c.bySession[sessionID]
	if !ok {
		client = makgora.NewClient(c.baseURL, c.timeout,
			makgora.WithTokenSource(c.sessions.TokenSource(sessionID)))
		c.bySession[sessionID] = client
	}
	return client
}

// Drop forgets a session's client, typically after logout.
func (c *Clients) Drop(sessionID string) {
	c.mu.Lock()
	delete(c.bySession, sessionID)
	c.mu.Unlock()
}
