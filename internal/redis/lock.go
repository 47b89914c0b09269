package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const signupLockPrefix = "lock:signup:"

// releaseScript deletes a lock only while it still carries the caller's
// owner token, so an instance never frees a lock another one took over
// after expiry.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore serializes signups for the same email across instances.
type LockStore struct {
	client *redis.Client
	owner  string
}

// NewLockStore creates a LockStore with a fresh owner token.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client, owner: uuid.NewString()}
}

// AcquireSignupLock reports whether the lock for a normalized email was
// taken. It returns false without error if someone else holds it.
func (s *LockStore) AcquireSignupLock(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, signupLockPrefix+email, s.owner, ttl).Result()
}

// ReleaseSignupLock frees the lock if this store still owns it.
func (s *LockStore) ReleaseSignupLock(ctx context.Context, email string) error {
	return releaseScript.Run(ctx, s.client, []string{signupLockPrefix + email}, s.owner).Err()
}
