// Movie HTTP handlers.
//
// This file exposes REST endpoints for the personal collection:
//   - GET    /movies               (ranked list, optional ?q= filter, ETag support)
//   - GET    /movies/{id}          (single movie)
//   - POST   /movies               (add a catalog title, Idempotency-Key aware)
//   - PUT    /movies/{id}/review   (rate and review, returns the new ranking)
//   - DELETE /movies/{id}          (remove, returns the new ranking)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/http/middleware"
	"github.com/tbourn/go-movie-collection/internal/repo"
	"github.com/tbourn/go-movie-collection/internal/utils"
)

//
// DTOs
//

// ListMoviesResponse wraps a ranked view of the collection.
type ListMoviesResponse struct {
	Movies []domain.Movie `json:"movies"`
}

// AddMovieRequest selects a catalog title by its remote id.
type AddMovieRequest struct {
	// RemoteID is the catalog id of the chosen search result.
	RemoteID int64 `json:"remote_id" binding:"required,gt=0" example:"348"`
}

// RatingInput accepts a rating sent either as a JSON number (7.5) or as the
// text a form field would carry ("7.5"). Parsing and range checks happen in
// the service.
type RatingInput string

// UnmarshalJSON implements json.Unmarshaler.
func (r *RatingInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RatingInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("rating must be a number or numeric string: %w", err)
	}
	*r = RatingInput(n.String())
	return nil
}

// ReviewRequest sets a movie's rating and review together.
type ReviewRequest struct {
	// Rating out of 10, one decimal place.
	Rating RatingInput `json:"rating" swaggertype:"string" example:"8.5"`
	// Review is free text, clipped to the stored maximum.
	Review string `json:"review" example:"Still terrifying after all these years."`
}

//
// Helpers
//

// pathID parses the :id route parameter, writing a 400 on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "movie id must be a positive integer")
		return 0, false
	}
	return id, true
}

// moviesETag derives a weak validator from the collection size, its latest
// change and the filter, so any add, review or delete invalidates it.
func moviesETag(count int64, maxTS *time.Time, q string) string {
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	hq := fnv.New32a()
	_, _ = hq.Write([]byte(q))
	return fmt.Sprintf(`W/"movies:%d:%d:%08x"`, count, ts, hq.Sum32())
}

// location builds the canonical URL of a created movie from the matched route.
func location(c *gin.Context, id uint) string {
	base := c.FullPath()
	if base == "" {
		base = c.Request.URL.Path
	}
	return strings.TrimSuffix(base, "/") + "/" + strconv.FormatUint(uint64(id), 10)
}

// respondRanked re-reads the ranked collection after a mutation.
func (h *Handlers) respondRanked(c *gin.Context) {
	movies, err := h.movieSvc.Ranked(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListMoviesResponse{Movies: movies})
}

//
// Handlers
//

// ListMovies godoc
// @ID          listMovies
// @Summary     List the collection ranked by rating
// @Description Returns every stored movie ordered by rating (highest first, unrated last)
// @Description with its 1-based ranking. With q, only movies whose title or description
// @Description match are returned, keeping their collection-wide ranking.
// @Tags        Movies
// @Produce     json
//
// @Param       q              query   string  false  "Filter by title/description words"  example(alien)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {object}  handlers.ListMoviesResponse
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /movies [get]
func (h *Handlers) ListMovies(c *gin.Context) {
	ctx := c.Request.Context()
	q := strings.TrimSpace(c.Query("q"))

	// ETag pre-check (best effort).
	if db := h.movieDB(); db != nil {
		if count, maxTS, err := repo.MoviesStats(ctx, db); err == nil {
			if etagMatches(c, moviesETag(count, maxTS, q)) {
				notModified(c)
				return
			}
		}
	}

	var (
		movies []domain.Movie
		err    error
	)
	if q == "" {
		movies, err = h.movieSvc.Ranked(ctx)
	} else {
		movies, err = h.movieSvc.Matching(ctx, q)
	}
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListMoviesResponse{Movies: movies})
}

// GetMovie godoc
// @ID          getMovie
// @Summary     Get a movie
// @Tags        Movies
// @Produce     json
//
// @Param       id  path  int  true  "Movie ID"  minimum(1)
//
// @Success     200  {object}  domain.Movie
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Movie not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /movies/{id} [get]
func (h *Handlers) GetMovie(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	m, err := h.movieSvc.Get(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}

// AddMovie godoc
// @ID          addMovie
// @Summary     Add a catalog title to the collection
// @Description Fetches the catalog detail for remote_id and stores it without rating or review.
// @Description Supports idempotency via the Idempotency-Key header (same key → same movie).
// @Tags        Movies
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                     false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.AddMovieRequest   true   "Catalog selection"
//
// @Success     201  {object}  domain.Movie           "Created"
// @Success     200  {object}  domain.Movie           "Replayed"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Title already in collection"
// @Failure     422  {object}  handlers.ErrorResponse "Catalog release date unusable"
// @Failure     502  {object}  handlers.ErrorResponse "Catalog unavailable or malformed"
// @Failure     503  {object}  handlers.ErrorResponse "Catalog not configured"
// @Router      /movies [post]
func (h *Handlers) AddMovie(c *gin.Context) {
	ctx := c.Request.Context()

	var req AddMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "remote_id must be a positive integer")
		return
	}

	scope := middleware.IdempotencyScope(c)
	idemKey, _ := middleware.GetIdempotencyKey(c)
	db := h.selectionDB()

	// Idempotency (replay path).
	if idemKey != "" && db != nil {
		if rec, err := repo.GetIdempotency(ctx, db, scope, idemKey, time.Now().UTC()); err == nil && rec != nil {
			prev, err2 := repo.GetMovie(ctx, db, rec.MovieID)
			if err2 == nil {
				c.Header(middleware.HeaderIdempotencyReplayed, "true")
				ok(c, http.StatusOK, prev)
				return
			}
			// stale record, free the key so this request can bind it
			if errors.Is(err2, repo.ErrNotFound) {
				_, _ = repo.DeleteIdempotencyByMovie(ctx, db, rec.MovieID)
			}
		}
	}

	m, err := h.selSvc.Resolve(ctx, req.RemoteID)
	if err != nil {
		failErr(c, err)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && db != nil {
		ttl := h.IdempotencyTTL
		if ttl <= 0 {
			ttl = DefaultIdempotencyTTL
		}
		if _, err := repo.CreateIdempotency(ctx, db, scope, idemKey, m.ID, http.StatusCreated, ttl); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Uint("movie_id", m.ID).Msg("idempotency record not stored")
		}
	}

	created(c, location(c, m.ID), m)
}

// ReviewMovie godoc
// @ID          reviewMovie
// @Summary     Rate and review a movie
// @Description Stores rating (0–10, one decimal) and review together, then returns the
// @Description re-ranked collection.
// @Tags        Movies
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                      true  "Movie ID"  minimum(1)
// @Param       body  body  handlers.ReviewRequest   true  "Rating and review"
//
// @Success     200  {object}  handlers.ListMoviesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid rating or empty review"
// @Failure     404  {object}  handlers.ErrorResponse  "Movie not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /movies/{id}/review [put]
func (h *Handlers) ReviewMovie(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.movieSvc.Review(c.Request.Context(), id, string(req.Rating), req.Review); err != nil {
		failErr(c, err)
		return
	}
	h.respondRanked(c)
}

// DeleteMovie godoc
// @ID          deleteMovie
// @Summary     Remove a movie
// @Description Deletes the movie and returns the re-ranked collection.
// @Tags        Movies
// @Produce     json
//
// @Param       id  path  int  true  "Movie ID"  minimum(1)
//
// @Success     200  {object}  handlers.ListMoviesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Movie not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /movies/{id} [delete]
func (h *Handlers) DeleteMovie(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	if err := h.movieSvc.Delete(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	h.respondRanked(c)
}
