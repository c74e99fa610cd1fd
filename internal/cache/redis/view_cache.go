package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usyj/makgora-client/internal/domain"
)

const viewTTL = 10 * time.Minute

// setIfNewerLua writes a view entry only when its generation is at least as
// new as the stored one, so a slow watcher cycle can never overwrite the
// result of a later cycle.
const setIfNewerLua = `
local current = redis.call('HGET', KEYS[1], 'gen')
if current and tonumber(current) > tonumber(ARGV[1]) then
    return 0
end
redis.call('HSET', KEYS[1], 'gen', ARGV[1], 'data', ARGV[2], 'updated', ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`

// ViewCache implements domain.ViewCache using Redis hashes with a
// generation-guarded write.
//
// Key schema:
//
//	voteview:{id} - hash with fields "gen", "data" and "updated"
//	voteview:gen  - the watch-cycle counter, shared by all instances
type ViewCache struct {
	c          *Client
	setIfNewer *redis.Script
}

// NewViewCache creates a ViewCache backed by the given Client.
func NewViewCache(c *Client) *ViewCache {
	return &ViewCache{
		c:          c,
		setIfNewer: redis.NewScript(setIfNewerLua),
	}
}

func (vc *ViewCache) viewKey(voteID int64) string {
	return vc.c.key("voteview:" + strconv.FormatInt(voteID, 10))
}

// NextGeneration increments and returns the shared watch-cycle counter.
// Because it lives next to the entries it guards, a gateway restart (or a
// second instance) continues the sequence instead of restarting at 1, which
// would make SetIfNewer reject every fresh write until the old entries
// expired.
func (vc *ViewCache) NextGeneration(ctx context.Context) (uint64, error) {
	n, err := vc.c.rdb.Incr(ctx, vc.c.key("voteview:gen")).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: next view generation: %w", err)
	}
	return uint64(n), nil
}

// SetIfNewer stores the entry unless the cache already holds a strictly
// newer generation, in which case it returns domain.ErrStaleGeneration.
func (vc *ViewCache) SetIfNewer(ctx context.Context, entry domain.VoteViewEntry) error {
	res, err := vc.setIfNewer.Run(
		ctx,
		vc.c.rdb,
		[]string{vc.viewKey(entry.VoteID)},
		entry.Generation,
		entry.Payload,
		entry.UpdatedAt.UnixMilli(),
		viewTTL.Milliseconds(),
	).Int64()
	if err != nil {
		return fmt.Errorf("redis: set view for vote %d: %w", entry.VoteID, err)
	}
	if res == 0 {
		return domain.ErrStaleGeneration
	}
	return nil
}

// Get retrieves the cached view for a vote. It returns domain.ErrNotFound
// when no entry exists.
func (vc *ViewCache) Get(ctx context.Context, voteID int64) (domain.VoteViewEntry, error) {
	vals, err := vc.c.rdb.HMGet(ctx, vc.viewKey(voteID), "gen", "data", "updated").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.VoteViewEntry{}, domain.ErrNotFound
		}
		return domain.VoteViewEntry{}, fmt.Errorf("redis: get view for vote %d: %w", voteID, err)
	}
	if len(vals) != 3 || vals[0] == nil || vals[1] == nil {
		return domain.VoteViewEntry{}, domain.ErrNotFound
	}

	entry := domain.VoteViewEntry{VoteID: voteID}
	if s, ok := vals[0].(string); ok {
		gen, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return domain.VoteViewEntry{}, fmt.Errorf("redis: parse generation for vote %d: %w", voteID, err)
		}
		entry.Generation = gen
	}
	if s, ok := vals[1].(string); ok {
		entry.Payload = []byte(s)
	}
	if s, ok := vals[2].(string); ok {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			entry.UpdatedAt = time.UnixMilli(ms).UTC()
		}
	}
	return entry, nil
}

// Invalidate drops the cached view for a vote.
func (vc *ViewCache) Invalidate(ctx context.Context, voteID int64) error {
	if err := vc.c.rdb.Del(ctx, vc.viewKey(voteID)).Err(); err != nil {
		return fmt.Errorf("redis: invalidate view for vote %d: %w", voteID, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.ViewCache = (*ViewCache)(nil)
