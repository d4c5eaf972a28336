package http

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"mortgage-calculator/repository"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

// Limiter decides whether the client identified by key may make another
// request.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// TokenBucketLimiter keeps one bucket per client in process. Buckets refill
// completely once refillDur has passed since the last refill.
type TokenBucketLimiter struct {
	mu          sync.Mutex
	capacity    int
	refillDur   time.Duration
	clients     map[string]*clientBucket
	stopCleanup chan struct{}
	stopOnce    sync.Once
	now         func() time.Time
}

func NewTokenBucketLimiter(capacity int, refillDur time.Duration) *TokenBucketLimiter {
	rl := &TokenBucketLimiter{
		capacity:    capacity,
		refillDur:   refillDur,
		clients:     make(map[string]*clientBucket),
		stopCleanup: make(chan struct{}),
		now:         time.Now,
	}
	go rl.cleanupLoop()
	return rl
}

func (r *TokenBucketLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *TokenBucketLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for ip, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(r.clients, ip)
		}
	}
}

func (r *TokenBucketLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

func (r *TokenBucketLimiter) Allow(_ context.Context, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[key]

	if !exists {
		r.clients[key] = &clientBucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return r.capacity > 0
	}

	if now.Sub(bucket.lastRefill) >= r.refillDur {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}

// WindowLimiter counts requests per fixed window in a shared
// CounterRepository, so several instances behind a balancer share one
// budget. Store failures let the request through.
type WindowLimiter struct {
	store    repository.CounterRepository
	capacity int64
	window   time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewWindowLimiter(
	store repository.CounterRepository,
	capacity int,
	window time.Duration,
	log *zap.Logger,
) *WindowLimiter {
	if log == nil {
		log = zap.NewNop()
	}
	return &WindowLimiter{
		store:    store,
		capacity: int64(capacity),
		window:   window,
		log:      log,
		now:      time.Now,
	}
}

func (l *WindowLimiter) Allow(ctx context.Context, key string) bool {
	slot := l.now().UnixNano() / int64(l.window)
	n, err := l.store.Incr(ctx, key+":"+strconv.FormatInt(slot, 10), l.window)
	if err != nil {
		l.log.Warn("rate limit store unavailable", zap.Error(err))
		return true
	}
	return n <= l.capacity
}
