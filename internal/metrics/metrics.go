package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors shared by the HTTP middleware and handlers.
var (
	// HTTPRequests counts requests by method, matched route and status code.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "http_requests_total", Help: "HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration observes request latency by method and matched route.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "rideshare", Name: "http_request_duration_seconds", Help: "HTTP request latency by method and route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	// AuthAttempts counts signup and login attempts by outcome kind.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "auth_attempts_total", Help: "Signup and login attempts by outcome."},
		[]string{"op", "outcome"},
	)
	// RidesBooked counts successful bookings.
	RidesBooked = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "rideshare", Name: "rides_booked_total", Help: "Rides booked."},
	)
)

// RegisterCollectors registers every collector in this package with reg.
// It panics if any is already registered there.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(RidesBooked)
}
