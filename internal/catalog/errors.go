package catalog

import "errors"

var (
	// ErrCatalogUnavailable covers transport failures, timeouts and non-2xx
	// responses from the remote catalog.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCatalogMalformed is returned when a response body cannot be decoded or
	// lacks a field the caller depends on.
	ErrCatalogMalformed = errors.New("catalog response malformed")

	// ErrEmptyQuery is returned by Search for a blank query.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrInvalidID is returned by Movie for a non-positive remote id.
	ErrInvalidID = errors.New("remote id must be positive")
)
