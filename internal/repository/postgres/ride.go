package postgres

import (
	"context"
	"database/sql"

	"rideshare/internal/domain"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (user_id, pickup_location, drop_location, date_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	status := ride.Status
	if status == "" {
		status = domain.RideStatusConfirmed
	}

	return r.q.QueryRowContext(ctx, query,
		ride.UserID,
		ride.PickupLocation,
		ride.DropLocation,
		ride.DateTime,
		status,
	).Scan(&ride.ID)
}

// ListByUserID retrieves the rides owned by a user, most recent first.
// Ties on date_time fall back to insertion order.
func (r *RideRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Ride, error) {
	query := `
		SELECT id, user_id, pickup_location, drop_location, date_time, status
		FROM rides
		WHERE user_id = $1
		ORDER BY date_time DESC, id DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rides := make([]*domain.Ride, 0)
	for rows.Next() {
		var ride domain.Ride
		if err := rows.Scan(
			&ride.ID,
			&ride.UserID,
			&ride.PickupLocation,
			&ride.DropLocation,
			&ride.DateTime,
			&ride.Status,
		); err != nil {
			return nil, err
		}
		ride.DateTime = ride.DateTime.UTC()
		rides = append(rides, &ride)
	}
	return rides, rows.Err()
}
