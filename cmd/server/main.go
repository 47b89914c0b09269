package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/app"
	"rideshare/internal/auth"
	"rideshare/internal/config"
	"rideshare/internal/handler"
	"rideshare/internal/metrics"
	internalRedis "rideshare/internal/redis"
	"rideshare/internal/repository/postgres"
	"rideshare/internal/service"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
	log.Println("Server exited")
}

func run() error {
	cfg := config.Load()

	// New Relic comes first so the database and Redis clients can be traced.
	nrApp := app.NewNewRelicApp(cfg.NewRelic)
	if nrApp != nil {
		defer nrApp.Shutdown(shutdownTimeout)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := app.NewDatabase(startCtx, cfg.Database, nrApp)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(startCtx, cfg.Redis, nrApp)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server, err := wireServer(db, redisClient, nrApp, cfg)
	if err != nil {
		return fmt.Errorf("failed to wire server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// wireServer builds stores, services and handlers and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(userRepo, hasher, tokens, internalRedis.NewLockStore(redisClient))
	resolver := service.NewUserResolver(userRepo, internalRedis.NewCacheStore(redisClient))
	rideService := service.NewRideService(rideRepo, resolver)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterCollectors(registry)

	router := app.NewRouter(app.RouterDeps{
		AuthHandler:   handler.NewAuthHandler(authService),
		RideHandler:   handler.NewRideHandler(rideService),
		Authenticator: authService,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
		Gatherer:      registry,
		AllowedOrigin: cfg.Server.AllowedOrigin,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
