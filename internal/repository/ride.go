package repository

import (
	"context"

	"rideshare/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride and fills in its ID.
	Create(ctx context.Context, ride *domain.Ride) error

	// ListByUserID retrieves all rides owned by the user, most recent first.
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Ride, error)
}
