// Package services – MovieService
//
// MovieService owns reads and single-record mutations of the collection:
// the ranked view, rating/review updates and deletes. Ranking is computed on
// every read and never stored.
package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/search"
)

const (
	// MaxRating is the top of the rating scale.
	MaxRating = 10.0
	// DefaultReviewMaxLen caps stored reviews by rune length.
	DefaultReviewMaxLen = 500
)

// MovieService provides the ranked view and mutations on single movies.
type MovieService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the movie repository used by this service.
	Repo MovieRepo

	// ReviewMaxLen caps stored reviews by rune length (0 disables).
	ReviewMaxLen int
}

// NewMovieService constructs a MovieService. A nil repo falls back to StoreRepo.
func NewMovieService(db *gorm.DB, r MovieRepo) *MovieService {
	if r == nil {
		r = StoreRepo{}
	}
	return &MovieService{DB: db, Repo: r, ReviewMaxLen: DefaultReviewMaxLen}
}

// Ranked returns the whole collection ordered by rating with Ranking filled.
// Two calls with no mutation in between return identical output.
func (s *MovieService) Ranked(ctx context.Context) ([]domain.Movie, error) {
	tr := otel.Tracer("services/MovieService")
	ctx, span := tr.Start(ctx, "Ranked")
	defer span.End()

	movies, err := s.Repo.ListMovies(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	span.SetAttributes(attribute.Int("movies.count", len(movies)))
	return Rank(movies), nil
}

// Matching returns the ranked view restricted to movies whose title or
// description matches query, best match first. Rankings are those of the full
// collection. A blank query returns the whole ranked view.
func (s *MovieService) Matching(ctx context.Context, query string) ([]domain.Movie, error) {
	tr := otel.Tracer("services/MovieService")
	ctx, span := tr.Start(ctx, "Matching",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	ranked, err := s.Ranked(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return ranked, nil
	}

	docs := make([]search.Document, len(ranked))
	byID := make(map[uint]domain.Movie, len(ranked))
	for i, m := range ranked {
		docs[i] = search.Document{ID: m.ID, Text: m.Title + "\n" + m.Description}
		byID[m.ID] = m
	}
	hits := search.NewIndex(docs).TopK(query, 0)

	out := make([]domain.Movie, 0, len(hits))
	for _, h := range hits {
		out = append(out, byID[h.ID])
	}
	span.SetAttributes(attribute.Int("movies.matched", len(out)))
	return out, nil
}

// Get returns a single movie by id. Ranking is not filled.
func (s *MovieService) Get(ctx context.Context, id uint) (*domain.Movie, error) {
	m, err := s.Repo.GetMovie(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// Review validates rating and review and stores both together. Nothing is
// written when validation fails or id does not exist.
func (s *MovieService) Review(ctx context.Context, id uint, rating, review string) error {
	tr := otel.Tracer("services/MovieService")
	ctx, span := tr.Start(ctx, "Review",
		trace.WithAttributes(attribute.Int64("movie.id", int64(id))),
	)
	defer span.End()

	r, err := ParseRating(rating)
	if err != nil {
		return err
	}
	review = strings.TrimSpace(review)
	if review == "" {
		return ErrEmptyReview
	}
	review = s.clip(review)

	if err := s.Repo.UpdateMovieReview(ctx, s.DB, id, &r, &review); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}

// Delete removes a movie by id.
func (s *MovieService) Delete(ctx context.Context, id uint) error {
	tr := otel.Tracer("services/MovieService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("movie.id", int64(id))),
	)
	defer span.End()

	if err := s.Repo.DeleteMovie(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}

// ParseRating parses a user-entered rating such as "7.5". The value must be
// finite and within [0, MaxRating]; it is rounded to one decimal.
func ParseRating(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidRating
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidRating
	}
	v = math.Round(v*10) / 10
	if v < 0 || v > MaxRating {
		return 0, ErrInvalidRating
	}
	return v, nil
}

// clip truncates a review to the configured maximum rune length.
func (s *MovieService) clip(review string) string {
	if s.ReviewMaxLen > 0 && utf8.RuneCountInString(review) > s.ReviewMaxLen {
		return string([]rune(review)[:s.ReviewMaxLen])
	}
	return review
}
