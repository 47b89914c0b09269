package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/handler"
	"rideshare/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler   *handler.AuthHandler
	RideHandler   *handler.RideHandler
	Authenticator middleware.Authenticator
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
	Gatherer      prometheus.Gatherer
	AllowedOrigin string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigin))
	router.Use(middleware.MetricsMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		// Auth routes.
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", deps.AuthHandler.Signup)
			authRoutes.POST("/login", deps.AuthHandler.Login)
		}

		// Ride routes.
		rides := api.Group("/rides")
		rides.Use(middleware.AuthMiddleware(deps.Authenticator))
		rides.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
		{
			rides.POST("/book", deps.RideHandler.BookRide)
			rides.GET("/my", deps.RideHandler.ListMyRides)
		}
	}

	return router
}
