// Package rate provides fixed-window rate limiting for the HTTP surface.
// The Redis backend is authoritative in multi-instance deployments; the
// in-memory backend serves single-node setups and tests.
package rate

import (
	"context"
	"time"
)

// Result describes one Allow call.
type Result struct {
	Allowed     bool
	Remaining   int64
	RetryAfter  time.Duration
	WindowTTL   time.Duration
	CurrentHits int64
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
