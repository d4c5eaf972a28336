package http

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"mortgage-calculator/repository"
)

func TestTokenBucketLimiter(t *testing.T) {
	rl := NewTokenBucketLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
	assert.False(t, rl.Allow(ctx, "1.1.1.1"))
	assert.True(t, rl.Allow(ctx, "2.2.2.2"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow(ctx, "1.1.1.1"))
}

func TestTokenBucketLimiter_Cleanup(t *testing.T) {
	rl := NewTokenBucketLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.Allow(context.Background(), "1.1.1.1")

	now = now.Add(2 * time.Hour)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestTokenBucketLimiter_StopTwice(t *testing.T) {
	rl := NewTokenBucketLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestWindowLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewWindowLimiter(repository.NewRedisCounter(client, "ratelimit:"), 3, time.Minute, nil)
	now := time.Date(2026, 1, 1, 0, 0, 10, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "1.1.1.1"))
	}
	assert.False(t, l.Allow(ctx, "1.1.1.1"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow(ctx, "1.1.1.1"))
}

type brokenCounter struct{}

func (brokenCounter) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestWindowLimiter_FailsOpen(t *testing.T) {
	l := NewWindowLimiter(brokenCounter{}, 1, time.Minute, nil)
	assert.True(t, l.Allow(context.Background(), "1.1.1.1"))
	assert.True(t, l.Allow(context.Background(), "1.1.1.1"))
}
