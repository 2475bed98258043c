// Package services – SelectionService
//
// SelectionService turns a catalog search hit chosen by the user into a new
// collection record. The record is pre-populated from the catalog detail and
// starts without rating or review.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/repo"
)

// DefaultImageBaseURL prefixes catalog poster paths.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

// Catalog is the subset of the remote catalog client used here.
type Catalog interface {
	Search(ctx context.Context, query string) ([]catalog.SearchResult, error)
	Movie(ctx context.Context, id int64) (*catalog.Detail, error)
}

// SelectionService resolves catalog selections into stored movies.
type SelectionService struct {
	DB      *gorm.DB
	Repo    MovieRepo
	Catalog Catalog

	// ImageBaseURL is concatenated with the catalog poster path.
	ImageBaseURL string
}

// NewSelectionService constructs a SelectionService with the default image
// prefix. A nil repo falls back to StoreRepo.
func NewSelectionService(db *gorm.DB, r MovieRepo, c Catalog) *SelectionService {
	if r == nil {
		r = StoreRepo{}
	}
	return &SelectionService{DB: db, Repo: r, Catalog: c, ImageBaseURL: DefaultImageBaseURL}
}

// Search passes the query to the catalog and returns its results unchanged.
func (s *SelectionService) Search(ctx context.Context, query string) ([]catalog.SearchResult, error) {
	tr := otel.Tracer("services/SelectionService")
	ctx, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	if s.Catalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	return s.Catalog.Search(ctx, query)
}

// Resolve fetches the catalog detail for remoteID and stores it as a new
// movie with rating and review unset. The created movie (with its id) is
// returned so the caller can continue to rating entry.
func (s *SelectionService) Resolve(ctx context.Context, remoteID int64) (*domain.Movie, error) {
	tr := otel.Tracer("services/SelectionService")
	ctx, span := tr.Start(ctx, "Resolve",
		trace.WithAttributes(attribute.Int64("catalog.id", remoteID)),
	)
	defer span.End()

	if s.Catalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	d, err := s.Catalog.Movie(ctx, remoteID)
	if err != nil {
		return nil, err
	}

	year, err := ReleaseYear(d.ReleaseDate)
	if err != nil {
		return nil, err
	}

	m := &domain.Movie{
		Title:       d.OriginalTitle,
		Year:        year,
		Description: d.Overview,
		ImgURL:      s.ImageBaseURL + d.PosterPath,
	}
	if err := s.Repo.CreateMovie(ctx, s.DB, m); err != nil {
		if errors.Is(err, repo.ErrDuplicateTitle) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, m.Title)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int64("movie.id", int64(m.ID)))
	return m, nil
}

// ReleaseYear returns the integer before the first '-' of a release date
// such as "1994-09-10".
func ReleaseYear(releaseDate string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(releaseDate), "-")
	if head == "" {
		return 0, ErrInvalidReleaseDate
	}
	year, err := strconv.Atoi(head)
	if err != nil || year < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidReleaseDate, releaseDate)
	}
	return year, nil
}
