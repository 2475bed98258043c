package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/repo"
)

// MovieRepo defines the persistence contract used by the movie services.
type MovieRepo interface {
	// ListMovies returns every movie in store order.
	ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error)

	// GetMovie fetches a movie by id.
	GetMovie(ctx context.Context, db *gorm.DB, id uint) (*domain.Movie, error)

	// CreateMovie inserts a movie; fails on a duplicate title.
	CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error

	// UpdateMovieReview sets rating and review together.
	UpdateMovieReview(ctx context.Context, db *gorm.DB, id uint, rating *float64, review *string) error

	// DeleteMovie removes a movie by id.
	DeleteMovie(ctx context.Context, db *gorm.DB, id uint) error
}

// StoreRepo adapts the repo package free functions to MovieRepo.
type StoreRepo struct{}

var _ MovieRepo = StoreRepo{}

// ListMovies proxies repo.ListMovies.
func (StoreRepo) ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error) {
	return repo.ListMovies(ctx, db)
}

// GetMovie proxies repo.GetMovie.
func (StoreRepo) GetMovie(ctx context.Context, db *gorm.DB, id uint) (*domain.Movie, error) {
	return repo.GetMovie(ctx, db, id)
}

// CreateMovie proxies repo.CreateMovie.
func (StoreRepo) CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error {
	return repo.CreateMovie(ctx, db, m)
}

// UpdateMovieReview proxies repo.UpdateMovieReview.
func (StoreRepo) UpdateMovieReview(ctx context.Context, db *gorm.DB, id uint, rating *float64, review *string) error {
	return repo.UpdateMovieReview(ctx, db, id, rating, review)
}

// DeleteMovie proxies repo.DeleteMovie.
func (StoreRepo) DeleteMovie(ctx context.Context, db *gorm.DB, id uint) error {
	return repo.DeleteMovie(ctx, db, id)
}
