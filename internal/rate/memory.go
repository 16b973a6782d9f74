package rate

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter mirrors the Redis fixed-window algorithm on a local
// go-cache. Counters expire with the window, so no manual sweep is
// needed beyond the cache's own janitor.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu    sync.Mutex
	cache *gocache.Cache
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	if max <= 0 {
		max = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		cache:  gocache.New(window, 2*window),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	winStart := time.Now().UTC().Truncate(l.Window)
	cacheKey := fmt.Sprintf("%s:%d", key, winStart.Unix())

	l.mu.Lock()
	defer l.mu.Unlock()

	var hits int64
	var windowTTL time.Duration

	if _, exp, found := l.cache.GetWithExpiration(cacheKey); found {
		n, err := l.cache.IncrementInt64(cacheKey, 1)
		if err != nil {
			// item expired between Get and Increment, restart the count
			l.cache.Set(cacheKey, int64(1), l.Window)
			n = 1
			exp = time.Now().Add(l.Window)
		}
		hits = n
		windowTTL = time.Until(exp)
	} else {
		l.cache.Set(cacheKey, int64(1), l.Window)
		hits = 1
		windowTTL = l.Window
	}

	remaining := l.Max - hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:     hits <= l.Max,
		Remaining:   remaining,
		CurrentHits: hits,
		WindowTTL:   windowTTL,
	}
	if !res.Allowed {
		res.RetryAfter = windowTTL
	}
	return res, nil
}
