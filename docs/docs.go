// Package docs registers the OpenAPI description of the movie collection API
// with swag so gin-swagger can serve it under /swagger/*any.
//
// The template mirrors the godoc annotations on the handlers in
// internal/http/handlers; regenerate with `swag init -g internal/http/router.go`
// after changing them.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/movies": {
            "get": {
                "description": "Returns every stored movie ordered by rating (highest first, unrated last) with its 1-based ranking. With q, only movies whose title or description match are returned, keeping their collection-wide ranking.",
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "List the collection ranked by rating",
                "operationId": "listMovies",
                "parameters": [
                    {"type": "string", "example": "alien", "description": "Filter by title/description words", "name": "q", "in": "query"},
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListMoviesResponse"}},
                    "304": {"description": "Not Modified", "schema": {"type": "string"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Fetches the catalog detail for remote_id and stores it without rating or review. Supports idempotency via the Idempotency-Key header (same key → same movie).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Add a catalog title to the collection",
                "operationId": "addMovie",
                "parameters": [
                    {"type": "string", "example": "7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab", "description": "Idempotency key for safe retries", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Catalog selection", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AddMovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replayed", "schema": {"$ref": "#/definitions/domain.Movie"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Movie"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Title already in collection", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "422": {"description": "Catalog release date unusable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Catalog unavailable or malformed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Catalog not configured", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Get a movie",
                "operationId": "getMovie",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Movie"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Movie not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes the movie and returns the re-ranked collection.",
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Remove a movie",
                "operationId": "deleteMovie",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListMoviesResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Movie not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/movies/{id}/review": {
            "put": {
                "description": "Stores rating (0–10, one decimal) and review together, then returns the re-ranked collection.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Rate and review a movie",
                "operationId": "reviewMovie",
                "parameters": [
                    {"minimum": 1, "type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true},
                    {"description": "Rating and review", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListMoviesResponse"}},
                    "400": {"description": "Invalid rating or empty review", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Movie not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/catalog/search": {
            "get": {
                "description": "Returns every catalog candidate on the first result page for a title\nquery, in the catalog's order and without filtering.",
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Search the movie catalog",
                "operationId": "searchCatalog",
                "parameters": [
                    {"type": "string", "example": "alien", "description": "Title to search for", "name": "query", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SearchResponse"}},
                    "400": {"description": "Empty query", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "502": {"description": "Catalog unavailable or malformed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Catalog not configured", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.SearchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "release_date": {"type": "string"},
                "poster_path": {"type": "string"},
                "overview": {"type": "string"}
            }
        },
        "domain.Movie": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "year": {"type": "integer"},
                "description": {"type": "string"},
                "rating": {"type": "number"},
                "ranking": {"type": "integer"},
                "review": {"type": "string"},
                "img_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handlers.AddMovieRequest": {
            "type": "object",
            "required": ["remote_id"],
            "properties": {
                "remote_id": {"type": "integer", "example": 348}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string", "example": "resource not found"},
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"}
            }
        },
        "handlers.ListMoviesResponse": {
            "type": "object",
            "properties": {
                "movies": {"type": "array", "items": {"$ref": "#/definitions/domain.Movie"}}
            }
        },
        "handlers.ReviewRequest": {
            "type": "object",
            "properties": {
                "rating": {"type": "string", "example": "8.5"},
                "review": {"type": "string", "example": "Still terrifying after all these years."}
            }
        },
        "handlers.SearchResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/catalog.SearchResult"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Movie Collection API",
	Description:      "Personal movie collection: search a remote catalog, add titles, rate, review and rank them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
