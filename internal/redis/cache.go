package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"rideshare/internal/domain"
)

// UserCacheTTL bounds how long a resolved identity is reused.
// Users are immutable after signup.
const UserCacheTTL = 5 * time.Minute

const userCachePrefix = "cache:user:"

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client, ttl: UserCacheTTL}
}

// CachedUser represents a cached user entity. It has no credential fields.
type CachedUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GetUser retrieves a user from cache by normalized email.
func (s *CacheStore) GetUser(ctx context.Context, email string) (*domain.User, error) {
	data, err := s.client.Get(ctx, userCachePrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cached CachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        cached.ID,
		Name:      cached.Name,
		Email:     cached.Email,
		CreatedAt: cached.CreatedAt,
	}, nil
}

// SetUser stores a user in cache.
func (s *CacheStore) SetUser(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(CachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userCachePrefix+user.Email, data, s.ttl).Err()
}
