package handlers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/services"
)

//
// Service contracts (context-aware)
//

// MovieService covers reads and mutations on the stored collection.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MovieService interface {
	// Ranked returns every movie ordered by rating, ranks filled in.
	Ranked(ctx context.Context) ([]domain.Movie, error)
	// Matching returns movies matching query with their collection ranks.
	Matching(ctx context.Context, query string) ([]domain.Movie, error)
	// Get returns one movie.
	Get(ctx context.Context, id uint) (*domain.Movie, error)
	// Review stores a rating and review together.
	Review(ctx context.Context, id uint, rating, review string) error
	// Delete removes a movie.
	Delete(ctx context.Context, id uint) error
}

// SelectionService searches the remote catalog and adds chosen titles.
type SelectionService interface {
	// Search returns catalog candidates for a free-text title query.
	Search(ctx context.Context, query string) ([]catalog.SearchResult, error)
	// Resolve fetches the catalog detail for remoteID and stores it.
	Resolve(ctx context.Context, remoteID int64) (*domain.Movie, error)
}

//
// Handler wiring
//

// DefaultIdempotencyTTL is how long a stored POST /movies result is replayed.
const DefaultIdempotencyTTL = 24 * time.Hour

// Handlers groups the movie and catalog endpoints.
type Handlers struct {
	movieSvc MovieService
	selSvc   SelectionService

	// IdempotencyTTL bounds replay of POST /movies results.
	IdempotencyTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(movieSvc MovieService, selSvc SelectionService) *Handlers {
	return &Handlers{movieSvc: movieSvc, selSvc: selSvc, IdempotencyTTL: DefaultIdempotencyTTL}
}

// movieDB returns the store behind the movie service when it is the concrete
// implementation; conditional responses are skipped otherwise.
func (h *Handlers) movieDB() *gorm.DB {
	if svc, ok := h.movieSvc.(*services.MovieService); ok {
		return svc.DB
	}
	return nil
}

// selectionDB mirrors movieDB for idempotency records written on add.
func (h *Handlers) selectionDB() *gorm.DB {
	if svc, ok := h.selSvc.(*services.SelectionService); ok {
		return svc.DB
	}
	return nil
}
