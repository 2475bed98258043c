// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for POST /movies. It validates
// the header, optionally asks a lookup whether the key was already served for
// the route, and annotates the request context so downstream handlers can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - skip rate limiting when a replay is served (via an internal flag)
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set on responses served from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: true when a stored result exists
	ctxKeyRateBypass = "rate.bypass" // bool: true to skip rate limiting
)

var defaultIdemPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// GetIdempotencyKey returns the validated key stored by IdempotencyValidator.
// The second return value indicates presence.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the validator found a stored result for this
// request's scope and key.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyScope names the operation a key belongs to: the method plus the
// matched route template, e.g. "POST /api/v1/movies". Unmatched requests fall
// back to the raw path.
func IdempotencyScope(c *gin.Context) string {
	p := c.FullPath()
	if p == "" && c.Request != nil && c.Request.URL != nil {
		p = c.Request.URL.Path
	}
	method := http.MethodGet
	if c.Request != nil {
		method = c.Request.Method
	}
	return method + " " + p
}

// IdempotencyOptions configures header validation for IdempotencyValidator.
// TTL enforcement belongs to the lookup.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyLookup reports whether a still-valid result exists for
// (scope, key) at now. Errors are treated as a miss.
type IdempotencyLookup func(ctx context.Context, scope, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header (if present),
// stashes it in the context and, for POST requests, consults lookup. A hit
// marks the request as a replay and lets it through the rate limiter.
//
// Behavior:
//   - Header absent: no-op.
//   - Header invalid: 400 with a compact error body.
//   - Lookup hit: replay + rate-bypass flags set.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultIdemPattern
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_idempotency_key", "invalid Idempotency-Key")
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil && c.Request.Method == http.MethodPost {
			if exists, _ := lookup(c.Request.Context(), IdempotencyScope(c), key, time.Now().UTC()); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
