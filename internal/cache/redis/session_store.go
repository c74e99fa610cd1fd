package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usyj/makgora-client/internal/domain"
)

// SessionStore implements domain.SessionStore using JSON-serialized sessions
// under a TTL. It is the server-side analog of the browser's local storage
// slot: tokens and the cached profile, nothing else.
//
// Key schema:
//
//	session:{id} - string value containing JSON, expires after the TTL
type SessionStore struct {
	c   *Client
	ttl time.Duration
}

// NewSessionStore creates a SessionStore backed by the given Client. Each
// Put and Touch resets the TTL, so active sessions stay alive.
func NewSessionStore(c *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{c: c, ttl: ttl}
}

func (ss *SessionStore) sessionKey(id string) string { return ss.c.key("session:" + id) }

// Put stores a session, resetting its TTL.
func (ss *SessionStore) Put(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis: marshal session %s: %w", sess.ID, err)
	}
	if err := ss.c.rdb.Set(ctx, ss.sessionKey(sess.ID), data, ss.ttl).Err(); err != nil {
		return fmt.Errorf("redis: put session %s: %w", sess.ID, err)
	}
	return nil
}

// Get retrieves a session by id. It returns domain.ErrNotFound for unknown
// or expired sessions.
func (ss *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	data, err := ss.c.rdb.Get(ctx, ss.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("redis: get session %s: %w", id, err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("redis: unmarshal session %s: %w", id, err)
	}
	return sess, nil
}

// Delete removes a session.
func (ss *SessionStore) Delete(ctx context.Context, id string) error {
	if err := ss.c.rdb.Del(ctx, ss.sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis: delete session %s: %w", id, err)
	}
	return nil
}

// Touch extends a session's TTL without rewriting its contents.
func (ss *SessionStore) Touch(ctx context.Context, id string) error {
	ok, err := ss.c.rdb.Expire(ctx, ss.sessionKey(id), ss.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis: touch session %s: %w", id, err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time interface check.
var _ domain.SessionStore = (*SessionStore)(nil)
