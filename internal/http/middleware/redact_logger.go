// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the access logger for the movie API.
// It scrubs obvious PII from request metadata, masks credential headers,
// attaches a request-scoped zerolog.Logger for handlers, and emits one
// structured line per request.
//
// Bodies are never logged. Search terms travel in query strings (`q`,
// `query`), so queries are redacted and truncated rather than dropped.
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// Digits-only so it cannot eat hex runs inside UUIDs.
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// defaultMaskedHeaders are always fully masked. Authorization carries the
// catalog bearer token when the API is fronted by a proxy that forwards it.
var defaultMaskedHeaders = []string{"authorization", "cookie", "set-cookie", "proxy-authorization"}

// RedactOptions configures RedactingLogger.
//
// MaskHeaders names extra headers (case-insensitive) whose values are replaced
// with "[REDACTED]".
type RedactOptions struct {
	MaskHeaders []string
}

// Redact replaces UUIDs, email addresses and phone numbers in s. UUIDs go
// first so the loose phone pattern never sees their digit groups.
func Redact(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactingLogger logs each request with scrubbed query and headers.
//
// Level is error for 5xx or when handlers recorded gin errors, warn for 4xx,
// info otherwise. The movie id path parameter is logged as movie_id when
// present. Idempotent replays are flagged with replay=true.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	mask := make(map[string]struct{}, len(defaultMaskedHeaders)+len(opts.MaskHeaders))
	for _, h := range defaultMaskedHeaders {
		mask[h] = struct{}{}
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			mask[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		lc := log.With().
			Str("request_id", RequestIDFrom(c)).
			Str("method", c.Request.Method).
			Str("path", path)
		if id := c.Param("id"); id != "" {
			lc = lc.Str("movie_id", id)
		}
		l := lc.Logger()
		c.Set(loggerKey, &l)

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := mask[strings.ToLower(k)]; ok {
				safeHeaders[k] = "[REDACTED]"
				continue
			}
			safeHeaders[k] = Redact(strings.Join(vv, ", "))
		}
		safeQuery := truncate(Redact(c.Request.URL.RawQuery), maxQueryLogLength)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case len(c.Errors) > 0 || status >= 500:
			ev = l.Error()
			if len(c.Errors) > 0 {
				ev = ev.Str("errors", c.Errors.String())
			}
		case status >= 400:
			ev = l.Warn()
		}
		if IsReplay(c) {
			ev = ev.Bool("replay", true)
		}

		ev.
			Str("query", safeQuery).
			Str("remote_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}
