package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/TeTedo/polymarket-arbitrage-chance/internal/domain"
)

// unlockScript releases a lock only when the caller still owns it, so an
// expired lock grabbed by another instance is never deleted by mistake.
var unlockScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

// LockManager implements a Redis SETNX lock with an ownership token.
type LockManager struct {
	client *Client
}

var _ domain.LockManager = (*LockManager)(nil)

// NewLockManager creates a LockManager backed by the given client.
func NewLockManager(client *Client) *LockManager {
	return &LockManager{client: client}
}

// Acquire takes the lock named key for at most ttl. It returns
// domain.ErrLockHeld when another holder owns it. The returned unlock
// function releases the lock; calling it after the TTL expired is a no-op.
func (m *LockManager) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()
	lockKey := "lock:" + key

	ok, err := m.client.rdb.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, domain.ErrLockHeld
	}

	unlock := func() {
		// Detached from the caller's ctx so shutdown still releases the lock.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = unlockScript.Run(releaseCtx, m.client.rdb, []string{lockKey}, token).Err()
	}
	return unlock, nil
}
