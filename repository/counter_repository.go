package repository

import (
	"context"
	"time"
)

// CounterRepository keeps expiring counters, used for fixed-window rate
// limiting. Incr returns the value after incrementing; the ttl only applies
// when the key is created.
type CounterRepository interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
