package redis

import (
	"errors"
	"time"

	"github.com/crossbind/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
)

// Service is the subset of redis used by the nonce store, the cache provider
// and the healthcheck.
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)

	// GetWithTTL additionally returns the remaining time to live; 0 means
	// the key has no expiry
	GetWithTTL(c ctx.Ctx, key string) ([]byte, time.Duration, error)

	// Set stores value under key; ttl 0 means no expiry
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error

	Del(c ctx.Ctx, key string) error

	// GetDel atomically reads and removes key, for single-use tokens
	GetDel(c ctx.Ctx, key string) ([]byte, error)
}
