package domain

import (
	"context"
	"time"
)

// SessionStore persists authentication sessions across gateway restarts.
type SessionStore interface {
	Put(ctx context.Context, session Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	Touch(ctx context.Context, id string) error
}

// VoteViewEntry is a cached, pre-aggregated vote view stamped with the
// watcher generation that produced it.
type VoteViewEntry struct {
	VoteID     int64
	Generation uint64
	Payload    []byte
	UpdatedAt  time.Time
}

// ViewCache holds the watcher's latest aggregated vote views. SetIfNewer
// must reject entries whose generation is older than the stored one, so a
// slow refresh cycle can never overwrite a fresher result. NextGeneration
// hands out cycle generations from the same store as the entries: the
// sequence must survive restarts and be shared across instances, or a
// fresh process would start below the cached generations and every write
// would be rejected as stale.
type ViewCache interface {
	NextGeneration(ctx context.Context) (uint64, error)
	SetIfNewer(ctx context.Context, entry VoteViewEntry) error
	Get(ctx context.Context, voteID int64) (VoteViewEntry, error)
	Invalidate(ctx context.Context, voteID int64) error
}

// RateLimiter provides distributed rate limiting for the gateway surface.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// SignalBus carries refresh notifications from the watcher to the
// WebSocket hub.
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// LockManager provides distributed locks so concurrent gateway instances do
// not run overlapping watcher cycles.
type LockManager interface {
	// Acquire returns an unlock function on success, or ErrLockHeld when
	// another holder owns the lock.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}
