// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and give clients a stable, machine-readable
// taxonomy next to the human-readable message. Every error response carries
// an HTTP status and one of these codes.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "movie already in collection"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/services"
	"github.com/tbourn/go-movie-collection/internal/utils"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeInvalidReleaseDate = "invalid_release_date"
	ErrCodeCatalogUnavailable = "catalog_unavailable"
	ErrCodeCatalogMalformed   = "catalog_malformed"
)

// failErr maps a service or catalog error to its HTTP status and code.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMovieNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "movie not found")
	case errors.Is(err, services.ErrDuplicateTitle):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrEmptyReview),
		errors.Is(err, catalog.ErrEmptyQuery),
		errors.Is(err, catalog.ErrInvalidID),
		errors.Is(err, utils.ErrInvalidID):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidReleaseDate):
		fail(c, http.StatusUnprocessableEntity, ErrCodeInvalidReleaseDate, err.Error())
	case errors.Is(err, services.ErrCatalogNotConfigured):
		fail(c, http.StatusServiceUnavailable, ErrCodeCatalogUnavailable, err.Error())
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		fail(c, http.StatusBadGateway, ErrCodeCatalogUnavailable, "movie catalog unavailable, try again later")
	case errors.Is(err, catalog.ErrCatalogMalformed):
		fail(c, http.StatusBadGateway, ErrCodeCatalogMalformed, "movie catalog returned an unexpected response")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
