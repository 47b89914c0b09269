package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// UserCache caches users by normalized email. GetUser returns (nil, nil)
// on a miss. Cached users never carry a password hash.
type UserCache interface {
	GetUser(ctx context.Context, email string) (*domain.User, error)
	SetUser(ctx context.Context, user *domain.User) error
}

// UserResolver maps an authenticated identity (the token subject) to a user.
type UserResolver struct {
	userRepo repository.UserRepository
	cache    UserCache
}

// NewUserResolver creates a new UserResolver. cache may be nil.
func NewUserResolver(userRepo repository.UserRepository, cache UserCache) *UserResolver {
	return &UserResolver{userRepo: userRepo, cache: cache}
}

// Resolve returns the user behind identity. An identity with no backing
// user is an integrity fault and is reported as Unauthenticated.
func (r *UserResolver) Resolve(ctx context.Context, identity string) (*domain.User, error) {
	email := domain.NormalizeEmail(identity)
	if email == "" {
		return nil, ErrInvalidToken
	}

	if r.cache != nil {
		cached, err := r.cache.GetUser(ctx, email)
		if err != nil {
			log.Printf("user cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := r.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("authenticated identity has no user record")
			return nil, wrap(ErrInvalidToken, wrap(ErrNotFound, err))
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if r.cache != nil {
		public := *user
		public.PasswordHash = ""
		if err := r.cache.SetUser(ctx, &public); err != nil {
			log.Printf("user cache write failed: %v", err)
		}
	}

	return user, nil
}
