package scheduler_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/scheduler"
)

func TestRedisGate(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	ctx := context.Background()
	gate, err := scheduler.NewRedisGate(ctx, config.RedisConfig{Addr: addr, KeyPrefix: "guanwo-test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gate.Close() })

	key := "insight:" + uuid.NewString() + ":daily_affirmation:2026-03-11"
	t.Cleanup(func() { _ = gate.Release(context.Background(), key) })

	ok, err := gate.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, gate.Release(ctx, key))
	ok, err = gate.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
