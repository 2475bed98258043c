package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/http/middleware"
	"github.com/tbourn/go-movie-collection/internal/repo"
	"github.com/tbourn/go-movie-collection/internal/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:h_%s?mode=memory&cache=shared", name)), &gorm.Config{
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

// ----- Fake catalog -----

type fakeCatalog struct {
	searchFn func(ctx context.Context, q string) ([]catalog.SearchResult, error)
	movieFn  func(ctx context.Context, id int64) (*catalog.Detail, error)
	calls    *int
}

func (f fakeCatalog) Search(ctx context.Context, q string) ([]catalog.SearchResult, error) {
	return f.searchFn(ctx, q)
}

func (f fakeCatalog) Movie(ctx context.Context, id int64) (*catalog.Detail, error) {
	if f.calls != nil {
		*f.calls++
	}
	return f.movieFn(ctx, id)
}

// detailsByID serves fixed details; unknown ids are reported unavailable.
func detailsByID(details map[int64]catalog.Detail) fakeCatalog {
	return fakeCatalog{movieFn: func(_ context.Context, id int64) (*catalog.Detail, error) {
		d, ok := details[id]
		if !ok {
			return nil, fmt.Errorf("%w: status 404", catalog.ErrCatalogUnavailable)
		}
		return &d, nil
	}}
}

var testDetails = map[int64]catalog.Detail{
	348: {ID: 348, OriginalTitle: "Alien", ReleaseDate: "1979-05-25", PosterPath: "/alien.jpg", Overview: "In space no one can hear you scream."},
	679: {ID: 679, OriginalTitle: "Aliens", ReleaseDate: "1986-07-18", PosterPath: "/aliens.jpg", Overview: "Back to space, and this time it's war."},
	603: {ID: 603, OriginalTitle: "The Matrix", ReleaseDate: "1999-03-30", PosterPath: "/matrix.jpg", Overview: "A hacker learns the truth."},
	1:   {ID: 1, OriginalTitle: "Undated", ReleaseDate: "", PosterPath: "", Overview: "x"},
}

// ----- Stub movie service -----

type stubMovieService struct {
	rankedFn func(ctx context.Context) ([]domain.Movie, error)
}

func (s stubMovieService) Ranked(ctx context.Context) ([]domain.Movie, error) {
	return s.rankedFn(ctx)
}
func (s stubMovieService) Matching(ctx context.Context, _ string) ([]domain.Movie, error) {
	return s.rankedFn(ctx)
}
func (stubMovieService) Get(context.Context, uint) (*domain.Movie, error) {
	return nil, services.ErrMovieNotFound
}
func (stubMovieService) Review(context.Context, uint, string, string) error { return nil }
func (stubMovieService) Delete(context.Context, uint) error                 { return nil }

// ----- Router -----

type env struct {
	db *gorm.DB
	r  *gin.Engine
	h  *Handlers
}

func newEnv(t *testing.T, cat services.Catalog) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	h := New(services.NewMovieService(db, nil), services.NewSelectionService(db, nil, cat))
	return &env{db: db, r: newRouter(h), h: h}
}

func newRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	api := r.Group("/api/v1")
	api.GET("/movies", h.ListMovies)
	api.POST("/movies", h.AddMovie)
	api.GET("/movies/:id", h.GetMovie)
	api.PUT("/movies/:id/review", h.ReviewMovie)
	api.DELETE("/movies/:id", h.DeleteMovie)
	api.GET("/catalog/search", h.SearchCatalog)
	return r
}

func (e *env) do(t *testing.T, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

// add stores a catalog title through the API and returns the created movie.
func (e *env) add(t *testing.T, remoteID int64) domain.Movie {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/movies", fmt.Sprintf(`{"remote_id":%d}`, remoteID), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("add %d: status=%d body=%s", remoteID, w.Code, w.Body.String())
	}
	var m domain.Movie
	decode(t, w, &m)
	return m
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	decode(t, w, &er)
	return er
}

func titlesOf(ms []domain.Movie) string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = fmt.Sprintf("%d:%s", m.Ranking, m.Title)
	}
	return strings.Join(out, ",")
}
