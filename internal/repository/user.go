package repository

import (
	"context"

	"rideshare/internal/domain"
)

// UserRepository defines the persistence operations for users.
// Email arguments are expected to be normalized by the caller.
type UserRepository interface {
	// Create persists a new user and fills in its ID and CreatedAt.
	// Returns ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail reports whether a user with the normalized email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
