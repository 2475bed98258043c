// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// Request plumbing lives here: the correlation id carried by every response
// and error body, panic recovery, and lookup of the request-scoped logger
// installed by RedactingLogger. Install in this order:
//
//	r.Use(middleware.RequestID(), middleware.RedactingLogger(opts), middleware.Recovery())
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// HeaderRequestID carries the correlation id in both directions.
	HeaderRequestID = "X-Request-ID"

	requestIDKey = "requestID"
	loggerKey    = "logger"

	// maxRequestIDLen bounds client-supplied ids; longer ones are replaced.
	maxRequestIDLen = 128
	// maxQueryLogLength caps the number of bytes of the raw query string logged.
	maxQueryLogLength = 2048
)

// RequestID reuses a well-formed X-Request-ID from the client or generates a
// UUIDv4, stores it in the context and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

// validRequestID accepts 1..maxRequestIDLen printable ASCII characters so a
// client cannot inject control bytes into logs or response headers.
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// RequestIDFrom returns the correlation id of the current request, or "" when
// RequestID is not installed.
func RequestIDFrom(c *gin.Context) string {
	if s := c.GetString(requestIDKey); s != "" {
		return s
	}
	return c.Writer.Header().Get(HeaderRequestID)
}

// abortJSON ends the request with the standard {request_id, code, message}
// envelope.
func abortJSON(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": RequestIDFrom(c),
		"code":       code,
		"message":    msg,
	})
}

// Recovery turns a panic in a handler into a logged 500. The JSON envelope is
// written only when the handler had not started its response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && err == http.ErrAbortHandler {
				panic(rec)
			}
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("request_id", RequestIDFrom(c)).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			abortJSON(c, http.StatusInternalServerError, "internal_error", "internal server error")
		}()
		c.Next()
	}
}

// LoggerFrom returns the logger attached by RedactingLogger, or a copy of the
// global logger when none is attached.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// truncate caps s at max bytes and appends an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
