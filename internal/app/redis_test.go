package app

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"rideshare/internal/config"
)

func TestKeyNamespace(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		cmd  redis.Cmder
		want string
	}{
		{redis.NewStringCmd(ctx, "get", "cache:user:ann@test.com"), "cache:user"},
		{redis.NewBoolCmd(ctx, "setnx", "lock:signup:ann@test.com", "1"), "lock:signup"},
		{redis.NewStringCmd(ctx, "get", "idempotency:abc123"), "idempotency"},
		{redis.NewStringCmd(ctx, "get", "plain"), "redis"},
		{redis.NewStatusCmd(ctx, "ping"), "redis"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, keyNamespace(tt.cmd), tt.cmd.String())
	}
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, nil)
	require.Error(t, err)
}
