package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultExpiration applies when callers use Set without picking a TTL class.
var DefaultExpiration = 24 * time.Hour

// ErrMiss is returned when a key is absent, expired or unreadable. Callers
// treat every Get error as a miss; corruption is never propagated upward.
var ErrMiss = errors.New("cache: miss")

// Cache is the response cache shared by all source clients.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithExpiration(ctx context.Context, key string, value []byte, expiration time.Duration) error
}
