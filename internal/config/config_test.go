package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "http://localhost:5173", cfg.Server.AllowedOrigin)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.Equal(t, "rideshare", cfg.Auth.JWTIssuer)
	require.True(t, cfg.Database.AutoMigrate)
	require.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://app.example")

	cfg := Load()

	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	require.Equal(t, 12, cfg.Auth.BcryptCost)
	require.False(t, cfg.Database.AutoMigrate)
	require.Equal(t, 3, cfg.Redis.DB)
	require.Equal(t, "https://app.example", cfg.Server.AllowedOrigin)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("BCRYPT_COST", "high")
	t.Setenv("NEW_RELIC_ENABLED", "maybe")

	cfg := Load()

	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 10, cfg.Auth.BcryptCost)
	require.False(t, cfg.NewRelic.Enabled)
}
