// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/constants"
	"github.com/taibuivan/libris/internal/platform/respond"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors is the per-IP token bucket registry behind [RateLimit].
type visitors struct {
	mu    sync.Mutex
	byIP  map[string]*visitor
	limit rate.Limit
	burst int
}

func newVisitors(requestsPerSecond float64, burst int) *visitors {
	return &visitors{
		byIP:  make(map[string]*visitor),
		limit: rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

// allow spends one token from the bucket of ip, creating the bucket on first use.
func (registry *visitors) allow(ip string, now time.Time) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, found := registry.byIP[ip]
	if !found {
		entry = &visitor{limiter: rate.NewLimiter(registry.limit, registry.burst)}
		registry.byIP[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// evictIdle forgets buckets not used since now-ttl.
func (registry *visitors) evictIdle(now time.Time, ttl time.Duration) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for ip, entry := range registry.byIP {
		if now.Sub(entry.lastSeen) > ttl {
			delete(registry.byIP, ip)
		}
	}
}

// RateLimit answers 429 once a client IP exhausts its token bucket.
//
// Idle buckets are evicted by a background goroutine that exits when ctx is done.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	registry := newVisitors(requestsPerSecond, burst)
	retryAfter := int(math.Ceil(1 / requestsPerSecond))

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				registry.evictIdle(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !registry.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
