package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

// RideStatusConfirmed is assigned at booking. Rides have no later transitions.
const RideStatusConfirmed RideStatus = "CONFIRMED"

// Ride represents a booked ride. A ride belongs to exactly one user and
// that owner is never reassigned.
type Ride struct {
	ID             int64
	UserID         int64
	PickupLocation string
	DropLocation   string
	DateTime       time.Time
	Status         RideStatus
}
