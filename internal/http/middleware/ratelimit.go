// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter keyed by client
// IP. Requests that reach the remote catalog (search, add) cost catalogCost
// tokens, everything else one. Buckets that sit idle are evicted
// opportunistically so memory stays bounded. Idempotent replays flagged by
// IdempotencyValidator skip the limiter.
//
// The limiter is process-local; it protects the catalog token and the store
// from a runaway client, not from a distributed attack.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// catalogCost is the token cost of a request served by the remote catalog.
	catalogCost = 2
	// sweepEvery is the number of lookups between idle-bucket sweeps.
	sweepEvery = 5000
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByIP keys buckets by the client IP as resolved by Gin (honoring trusted
// proxies).
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-key token-bucket limiter. Safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter builds a limiter refilling rps tokens per second with the
// given burst (values <= 0 become 1). A nil keyFn keys by client IP.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if keyFn == nil {
		keyFn = KeyByIP()
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// getVisitor returns the limiter for key, creating it if absent. Every
// sweepEvery lookups idle buckets are swept first, so a stale bucket is
// evicted even when it is the one being requested.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= sweepEvery {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as a
// replay that should not consume tokens.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// requestCost is catalogCost for routes that call the remote catalog and 1
// otherwise.
func requestCost(c *gin.Context) int {
	route := c.FullPath()
	switch {
	case strings.HasSuffix(route, "/catalog/search"):
		return catalogCost
	case c.Request.Method == http.MethodPost && strings.HasSuffix(route, "/movies"):
		return catalogCost
	}
	return 1
}

// retryAfter converts a reservation delay to whole seconds, at least 1.
func retryAfter(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// Handler returns the limiting middleware. Denied requests get:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: <seconds until a token is available>
//	{"request_id": "...", "code": "too_many_requests", "message": "rate limit exceeded"}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		n := requestCost(c)
		if n > rl.burst {
			n = rl.burst
		}
		lim := rl.getVisitor(rl.keyFn(c))
		now := time.Now()
		res := lim.ReserveN(now, n)
		if res.OK() {
			delay := res.DelayFrom(now)
			if delay == 0 {
				c.Next()
				return
			}
			res.CancelAt(now)
			c.Header("Retry-After", retryAfter(delay))
		} else {
			c.Header("Retry-After", "1")
		}

		abortJSON(c, http.StatusTooManyRequests, "too_many_requests", "rate limit exceeded")
	}
}
