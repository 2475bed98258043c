// Package services holds the business logic of the movie collection: ranking
// the collection, resolving catalog selections into records, and mutating
// single records. This file centralizes the service-level error values so
// handlers can map them to HTTP results consistently.
package services

import "errors"

var (
	// ErrMovieNotFound indicates that no movie with the requested id exists.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrDuplicateTitle is returned when the selected title is already in the
	// collection. The existing record is left untouched.
	ErrDuplicateTitle = errors.New("movie already in collection")

	// ErrInvalidReleaseDate is returned when the catalog release date has no
	// numeric year before the first '-'.
	ErrInvalidReleaseDate = errors.New("invalid release date")

	// ErrInvalidRating is returned when a rating is blank, non-numeric, or
	// outside 0-10.
	ErrInvalidRating = errors.New("rating must be a number between 0 and 10")

	// ErrEmptyReview is returned when a review is blank after trimming.
	ErrEmptyReview = errors.New("review is empty")

	// ErrCatalogNotConfigured is returned by SelectionService when no catalog
	// client was provided (missing token).
	ErrCatalogNotConfigured = errors.New("catalog not configured")
)
