package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/guanwo/internal/config"
)

// Gate admits one run per key until the key expires or is released.
type Gate interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// MemoryGate is a Gate for a single process.
type MemoryGate struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryGate() *MemoryGate {
	return &MemoryGate{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (g *MemoryGate) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiry, ok := g.expires[key]; ok && now.Before(expiry) {
		return false, nil
	}
	g.expires[key] = now.Add(ttl)

	// Drop expired keys so the map only holds current periods.
	for k, expiry := range g.expires {
		if !now.Before(expiry) {
			delete(g.expires, k)
		}
	}
	return true, nil
}

func (g *MemoryGate) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.expires, key)
	return nil
}

// RedisGate is a Gate shared by every server process using the same Redis.
type RedisGate struct {
	client *goredis.Client
	prefix string
}

func NewRedisGate(ctx context.Context, cfg config.RedisConfig) (*RedisGate, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisGate{client: client, prefix: cfg.KeyPrefix}, nil
}

func (g *RedisGate) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis SETNX %s: %w", key, err)
	}
	return ok, nil
}

func (g *RedisGate) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}

func (g *RedisGate) Close() error {
	return g.client.Close()
}
