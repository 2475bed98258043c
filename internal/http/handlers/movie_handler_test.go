package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/http/middleware"
	"github.com/tbourn/go-movie-collection/internal/repo"
	"github.com/tbourn/go-movie-collection/internal/services"
)

func TestAddMovie_Created_LocationAndDefaults(t *testing.T) {
	e := newEnv(t, detailsByID(testDetails))

	w := e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var m domain.Movie
	decode(t, w, &m)
	if m.ID == 0 || m.Title != "Alien" || m.Year != 1979 {
		t.Fatalf("unexpected movie: %+v", m)
	}
	if m.ImgURL != services.DefaultImageBaseURL+"/alien.jpg" {
		t.Fatalf("img_url=%q", m.ImgURL)
	}
	if m.Rating != nil || m.Review != nil {
		t.Fatalf("new movie must start unrated: %+v", m)
	}
	if got, want := w.Header().Get("Location"), fmt.Sprintf("/api/v1/movies/%d", m.ID); got != want {
		t.Fatalf("Location=%q want %q", got, want)
	}
}

func TestAddMovie_ErrorMapping(t *testing.T) {
	e := newEnv(t, detailsByID(testDetails))
	e.add(t, 348)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"duplicate title", `{"remote_id":348}`, http.StatusConflict, ErrCodeConflict},
		{"bad release date", `{"remote_id":1}`, http.StatusUnprocessableEntity, ErrCodeInvalidReleaseDate},
		{"catalog failure", `{"remote_id":999}`, http.StatusBadGateway, ErrCodeCatalogUnavailable},
		{"missing id", `{}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"negative id", `{"remote_id":-4}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"not json", `remote_id=348`, http.StatusBadRequest, ErrCodeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/api/v1/movies", tc.body, nil)
			if w.Code != tc.status {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.status, w.Body.String())
			}
			if er := decodeErr(t, w); er.Code != tc.code || er.RequestID == "" {
				t.Fatalf("unexpected error body: %+v", er)
			}
		})
	}

	// failed adds wrote nothing
	w := e.do(t, http.MethodGet, "/api/v1/movies", "", nil)
	var list ListMoviesResponse
	decode(t, w, &list)
	if len(list.Movies) != 1 {
		t.Fatalf("expected only the first add stored, got %s", titlesOf(list.Movies))
	}
}

func TestAddMovie_CatalogNotConfigured(t *testing.T) {
	e := newEnv(t, nil)
	w := e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeErr(t, w); er.Code != ErrCodeCatalogUnavailable {
		t.Fatalf("code=%q", er.Code)
	}
}

func TestAddMovie_IdempotentReplay(t *testing.T) {
	calls := 0
	cat := detailsByID(testDetails)
	cat.calls = &calls
	e := newEnv(t, cat)

	hdr := map[string]string{middleware.HeaderIdempotencyKey: "add-alien-1"}
	w1 := e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`, hdr)
	if w1.Code != http.StatusCreated {
		t.Fatalf("first: status=%d body=%s", w1.Code, w1.Body.String())
	}
	var first domain.Movie
	decode(t, w1, &first)

	w2 := e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`, hdr)
	if w2.Code != http.StatusOK {
		t.Fatalf("replay: status=%d body=%s", w2.Code, w2.Body.String())
	}
	if w2.Header().Get(middleware.HeaderIdempotencyReplayed) != "true" {
		t.Fatalf("missing replay header")
	}
	var second domain.Movie
	decode(t, w2, &second)
	if second.ID != first.ID || second.Title != "Alien" {
		t.Fatalf("replay returned %+v, want id %d", second, first.ID)
	}
	if calls != 1 {
		t.Fatalf("catalog called %d times, want 1", calls)
	}

	// a different key is a fresh request and hits the title constraint
	w3 := e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`,
		map[string]string{middleware.HeaderIdempotencyKey: "add-alien-2"})
	if w3.Code != http.StatusConflict {
		t.Fatalf("new key: status=%d", w3.Code)
	}
}

func TestAddMovie_StaleIdempotencyRecord_Rebinds(t *testing.T) {
	calls := 0
	cat := detailsByID(testDetails)
	cat.calls = &calls
	e := newEnv(t, cat)

	// key left pointing at a movie that no longer exists
	if _, err := repo.CreateIdempotency(context.Background(), e.db, "POST /api/v1/movies", "stale", 999, http.StatusCreated, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}

	hdr := map[string]string{middleware.HeaderIdempotencyKey: "stale"}
	w := e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`, hdr)
	if w.Code != http.StatusCreated {
		t.Fatalf("first: status=%d body=%s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodPost, "/api/v1/movies", `{"remote_id":348}`, hdr)
	if w.Code != http.StatusOK || w.Header().Get(middleware.HeaderIdempotencyReplayed) != "true" {
		t.Fatalf("retry: status=%d body=%s", w.Code, w.Body.String())
	}
	if calls != 1 {
		t.Fatalf("catalog called %d times, want 1", calls)
	}
}

func TestListMovies_RankedAndConditional(t *testing.T) {
	e := newEnv(t, detailsByID(testDetails))
	alien := e.add(t, 348)
	e.add(t, 679)
	matrix := e.add(t, 603)

	for id, body := range map[uint]string{
		alien.ID:  `{"rating":"8.5","review":"classic"}`,
		matrix.ID: `{"rating":9,"review":"whoa"}`,
	} {
		w := e.do(t, http.MethodPut, fmt.Sprintf("/api/v1/movies/%d/review", id), body, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("review %d: status=%d body=%s", id, w.Code, w.Body.String())
		}
	}

	w := e.do(t, http.MethodGet, "/api/v1/movies", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var list ListMoviesResponse
	decode(t, w, &list)
	if got := titlesOf(list.Movies); got != "1:The Matrix,2:Alien,3:Aliens" {
		t.Fatalf("ranking=%s", got)
	}
	etag := w.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"movies:3:`) {
		t.Fatalf("ETag=%q", etag)
	}

	w = e.do(t, http.MethodGet, "/api/v1/movies", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusNotModified || w.Body.Len() != 0 {
		t.Fatalf("expected 304, got %d", w.Code)
	}

	// a filter has its own validator
	w = e.do(t, http.MethodGet, "/api/v1/movies?q=space", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK {
		t.Fatalf("filtered request with foreign ETag: %d", w.Code)
	}
	decode(t, w, &list)
	if len(list.Movies) != 2 {
		t.Fatalf("filter space: %s", titlesOf(list.Movies))
	}
	for _, m := range list.Movies {
		if m.Ranking < 2 {
			t.Fatalf("filtered movies keep collection ranks: %s", titlesOf(list.Movies))
		}
	}

	// a mutation invalidates the validator
	if w := e.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/movies/%d", matrix.ID), "", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	w = e.do(t, http.MethodGet, "/api/v1/movies", "", map[string]string{"If-None-Match": etag})
	if w.Code != http.StatusOK || w.Header().Get("ETag") == etag {
		t.Fatalf("expected fresh 200 after delete, got %d etag=%q", w.Code, w.Header().Get("ETag"))
	}
}

func TestListMovies_EmptyCollection(t *testing.T) {
	e := newEnv(t, nil)
	w := e.do(t, http.MethodGet, "/api/v1/movies", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"movies":[]}` {
		t.Fatalf("body=%s", w.Body.String())
	}
	if w2 := e.do(t, http.MethodGet, "/api/v1/movies?q=nothing", "", nil); strings.TrimSpace(w2.Body.String()) != `{"movies":[]}` {
		t.Fatalf("filtered body=%s", w2.Body.String())
	}
}

func TestListMovies_ServiceError_NoETagWithoutStore(t *testing.T) {
	h := New(stubMovieService{rankedFn: func(context.Context) ([]domain.Movie, error) {
		return nil, errors.New("disk on fire")
	}}, nil)
	e := &env{r: newRouter(h), h: h}

	w := e.do(t, http.MethodGet, "/api/v1/movies", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Header().Get("ETag") != "" {
		t.Fatalf("no ETag without a concrete store")
	}
	if er := decodeErr(t, w); er.Code != ErrCodeInternal {
		t.Fatalf("code=%q", er.Code)
	}
}

func TestGetMovie(t *testing.T) {
	e := newEnv(t, detailsByID(testDetails))
	m := e.add(t, 603)

	w := e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/movies/%d", m.ID), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got domain.Movie
	decode(t, w, &got)
	if got.ID != m.ID || got.Title != "The Matrix" {
		t.Fatalf("got %+v", got)
	}

	for path, status := range map[string]int{
		"/api/v1/movies/abc":  http.StatusBadRequest,
		"/api/v1/movies/0":    http.StatusBadRequest,
		"/api/v1/movies/-1":   http.StatusBadRequest,
		"/api/v1/movies/9999": http.StatusNotFound,
	} {
		if w := e.do(t, http.MethodGet, path, "", nil); w.Code != status {
			t.Fatalf("%s: status=%d want %d", path, w.Code, status)
		}
	}
}

func TestReviewMovie(t *testing.T) {
	e := newEnv(t, detailsByID(testDetails))
	m := e.add(t, 348)
	path := fmt.Sprintf("/api/v1/movies/%d/review", m.ID)

	w := e.do(t, http.MethodPut, path, `{"rating":"7.25","review":"  tense  "}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var list ListMoviesResponse
	decode(t, w, &list)
	if len(list.Movies) != 1 || list.Movies[0].Rating == nil || *list.Movies[0].Rating != 7.3 {
		t.Fatalf("rating not rounded/stored: %+v", list.Movies)
	}
	if list.Movies[0].Review == nil || *list.Movies[0].Review != "tense" || list.Movies[0].Ranking != 1 {
		t.Fatalf("review/ranking: %+v", list.Movies[0])
	}

	bad := []struct {
		name, path, body string
		status           int
	}{
		{"rating too high", path, `{"rating":11,"review":"x"}`, http.StatusBadRequest},
		{"rating text", path, `{"rating":"great","review":"x"}`, http.StatusBadRequest},
		{"rating missing", path, `{"review":"x"}`, http.StatusBadRequest},
		{"rating bool", path, `{"rating":true,"review":"x"}`, http.StatusBadRequest},
		{"empty review", path, `{"rating":5,"review":"   "}`, http.StatusBadRequest},
		{"bad id", "/api/v1/movies/x/review", `{"rating":5,"review":"x"}`, http.StatusBadRequest},
		{"missing movie", "/api/v1/movies/9999/review", `{"rating":5,"review":"x"}`, http.StatusNotFound},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if w := e.do(t, http.MethodPut, tc.path, tc.body, nil); w.Code != tc.status {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.status, w.Body.String())
			}
		})
	}

	// rejected reviews left the stored values alone
	w = e.do(t, http.MethodGet, fmt.Sprintf("/api/v1/movies/%d", m.ID), "", nil)
	var got domain.Movie
	decode(t, w, &got)
	if got.Rating == nil || *got.Rating != 7.3 || *got.Review != "tense" {
		t.Fatalf("stored values changed: %+v", got)
	}
}

func TestDeleteMovie(t *testing.T) {
	e := newEnv(t, detailsByID(testDetails))
	a := e.add(t, 348)
	e.add(t, 603)

	path := fmt.Sprintf("/api/v1/movies/%d", a.ID)
	w := e.do(t, http.MethodDelete, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var list ListMoviesResponse
	decode(t, w, &list)
	if got := titlesOf(list.Movies); got != "1:The Matrix" {
		t.Fatalf("after delete: %s", got)
	}

	if w := e.do(t, http.MethodDelete, path, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status=%d", w.Code)
	}
	if w := e.do(t, http.MethodDelete, "/api/v1/movies/zero", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status=%d", w.Code)
	}
}

func TestRatingInput_UnmarshalJSON(t *testing.T) {
	cases := map[string]RatingInput{
		`"8.5"`: "8.5",
		`8.5`:   "8.5",
		`10`:    "10",
		`null`:  "",
		`""`:    "",
	}
	for in, want := range cases {
		var r RatingInput
		if err := r.UnmarshalJSON([]byte(in)); err != nil || r != want {
			t.Fatalf("%s: got %q err=%v", in, r, err)
		}
	}
	var r RatingInput
	if err := r.UnmarshalJSON([]byte(`{}`)); err == nil {
		t.Fatalf("object should not parse as a rating")
	}
}

func TestMoviesETag_ChangesWithInputs(t *testing.T) {
	base := moviesETag(2, nil, "")
	if base != `W/"movies:2:0:811c9dc5"` {
		t.Fatalf("etag=%q", base)
	}
	if moviesETag(3, nil, "") == base || moviesETag(2, nil, "alien") == base {
		t.Fatalf("etag must change with count and filter")
	}
}
