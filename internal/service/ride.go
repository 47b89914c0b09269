package service

import (
	"context"
	"fmt"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RideService handles booking and listing rides for the authenticated user.
type RideService struct {
	rideRepo repository.RideRepository
	users    *UserResolver
	now      func() time.Time
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, users *UserResolver) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		users:    users,
		now:      time.Now,
	}
}

// WithClock overrides the clock used to timestamp new rides.
func (s *RideService) WithClock(now func() time.Time) *RideService {
	s.now = now
	return s
}

// BookRideRequest contains the parameters for booking a ride.
// Locations are accepted as-is.
type BookRideRequest struct {
	PickupLocation string
	DropLocation   string
}

// RideSummary is the public view of a ride. The owner is never exposed.
type RideSummary struct {
	ID             int64
	PickupLocation string
	DropLocation   string
	DateTime       time.Time
	Status         domain.RideStatus
}

// BookRide creates a confirmed ride owned by the caller.
func (s *RideService) BookRide(ctx context.Context, req BookRideRequest, identity string) (*RideSummary, error) {
	user, err := s.users.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		UserID:         user.ID,
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		// Postgres keeps microseconds; truncate so reads match what we return.
		DateTime: s.now().UTC().Truncate(time.Microsecond),
		Status:   domain.RideStatusConfirmed,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	summary := summarizeRide(ride)
	return &summary, nil
}

// ListUserRides returns the caller's rides, most recent first. A user
// without rides gets an empty slice.
func (s *RideService) ListUserRides(ctx context.Context, identity string) ([]RideSummary, error) {
	user, err := s.users.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	summaries := make([]RideSummary, 0, len(rides))
	for _, r := range rides {
		summaries = append(summaries, summarizeRide(r))
	}
	return summaries, nil
}

func summarizeRide(ride *domain.Ride) RideSummary {
	return RideSummary{
		ID:             ride.ID,
		PickupLocation: ride.PickupLocation,
		DropLocation:   ride.DropLocation,
		DateTime:       ride.DateTime,
		Status:         ride.Status,
	}
}
