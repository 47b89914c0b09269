package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideshare/internal/metrics"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// RideService is the subset of service.RideService used by RideHandler.
type RideService interface {
	BookRide(ctx context.Context, req service.BookRideRequest, identity string) (*service.RideSummary, error)
	ListUserRides(ctx context.Context, identity string) ([]service.RideSummary, error)
}

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// BookRideRequest is the HTTP request body for booking a ride.
type BookRideRequest struct {
	PickupLocation string `json:"pickupLocation"`
	DropLocation   string `json:"dropLocation"`
}

// RideResponse is the HTTP response for a ride.
type RideResponse struct {
	ID             int64  `json:"id"`
	PickupLocation string `json:"pickupLocation"`
	DropLocation   string `json:"dropLocation"`
	DateTime       string `json:"dateTime"`
	Status         string `json:"status"`
}

// BookRide handles POST /api/rides/book
func (h *RideHandler) BookRide(c *gin.Context) {
	var req BookRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.BookRide(c.Request.Context(), service.BookRideRequest{
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
	}, middleware.Identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.RidesBooked.Inc()

	respondJSON(c, http.StatusOK, toRideResponse(*ride))
}

// ListMyRides handles GET /api/rides/my
func (h *RideHandler) ListMyRides(c *gin.Context) {
	rides, err := h.rideService.ListUserRides(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

func toRideResponse(r service.RideSummary) RideResponse {
	return RideResponse{
		ID:             r.ID,
		PickupLocation: r.PickupLocation,
		DropLocation:   r.DropLocation,
		DateTime:       r.DateTime.UTC().Format(time.RFC3339Nano),
		Status:         string(r.Status),
	}
}
