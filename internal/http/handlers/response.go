// Package handlers provides HTTP handler implementations for the public API.
//
// Every failure leaves the API as an ErrorResponse with a stable code (see
// errors.go); successes are plain JSON bodies. Example:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "movie not found"
//	}
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-collection/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Echo of X-Request-ID, for matching client errors to server logs
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"movie not found"`
}

// fail aborts the request with an ErrorResponse. 5xx responses are logged at
// error level with the request-scoped logger, client errors at debug.
func fail(c *gin.Context, status int, code, msg string) {
	lg := middleware.LoggerFrom(c)
	ev := lg.Debug()
	if status >= http.StatusInternalServerError {
		ev = lg.Error()
	}
	ev.Int("status", status).Str("code", code).Str("message", msg).Msg("api error")

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: middleware.RequestIDFrom(c),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail for the router's NoRoute/NoMethod.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// created answers 201 with the new resource and its Location.
func created(c *gin.Context, location string, body any) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, body)
}

// etagMatches sets the ETag header and reports whether the request's
// If-None-Match names it (or is "*").
func etagMatches(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	inm := c.GetHeader("If-None-Match")
	if inm == "" {
		return false
	}
	for _, v := range strings.Split(inm, ",") {
		v = strings.TrimSpace(v)
		if v == "*" || v == etag {
			return true
		}
	}
	return false
}

func notModified(c *gin.Context) {
	c.Status(http.StatusNotModified)
}
