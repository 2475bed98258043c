package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func f64(v float64) *float64 { return &v }

// ----- Fake repo -----

type fakeMovieRepo struct {
	listItems []domain.Movie
	listErr   error

	getID    uint
	getMovie *domain.Movie
	getErr   error

	created   *domain.Movie
	createErr error

	updateID     uint
	updateRating *float64
	updateReview *string
	updateCalls  int
	updateErr    error

	deleteID  uint
	deleteErr error
}

func (r *fakeMovieRepo) ListMovies(ctx context.Context, db *gorm.DB) ([]domain.Movie, error) {
	return r.listItems, r.listErr
}

func (r *fakeMovieRepo) GetMovie(ctx context.Context, db *gorm.DB, id uint) (*domain.Movie, error) {
	r.getID = id
	return r.getMovie, r.getErr
}

func (r *fakeMovieRepo) CreateMovie(ctx context.Context, db *gorm.DB, m *domain.Movie) error {
	if r.createErr != nil {
		return r.createErr
	}
	m.ID = 42
	r.created = m
	return nil
}

func (r *fakeMovieRepo) UpdateMovieReview(ctx context.Context, db *gorm.DB, id uint, rating *float64, review *string) error {
	r.updateCalls++
	r.updateID, r.updateRating, r.updateReview = id, rating, review
	return r.updateErr
}

func (r *fakeMovieRepo) DeleteMovie(ctx context.Context, db *gorm.DB, id uint) error {
	r.deleteID = id
	return r.deleteErr
}

// ----- Fake catalog -----

type fakeCatalog struct {
	searchFn func(ctx context.Context, q string) ([]catalog.SearchResult, error)
	movieFn  func(ctx context.Context, id int64) (*catalog.Detail, error)
}

func (f fakeCatalog) Search(ctx context.Context, q string) ([]catalog.SearchResult, error) {
	return f.searchFn(ctx, q)
}

func (f fakeCatalog) Movie(ctx context.Context, id int64) (*catalog.Detail, error) {
	return f.movieFn(ctx, id)
}

func detailCatalog(d *catalog.Detail, err error) fakeCatalog {
	return fakeCatalog{movieFn: func(context.Context, int64) (*catalog.Detail, error) { return d, err }}
}
