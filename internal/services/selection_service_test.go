package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/repo"
)

func TestReleaseYear(t *testing.T) {
	if y, err := ReleaseYear("1994-09-10"); err != nil || y != 1994 {
		t.Fatalf("ReleaseYear = (%d, %v), want 1994", y, err)
	}
	if y, err := ReleaseYear("2003"); err != nil || y != 2003 {
		t.Fatalf("ReleaseYear(year only) = (%d, %v)", y, err)
	}
	for _, bad := range []string{"", "   ", "-09-10", "abcd-01-01", "19x4-01-01"} {
		if _, err := ReleaseYear(bad); !errors.Is(err, ErrInvalidReleaseDate) {
			t.Fatalf("ReleaseYear(%q) err = %v, want ErrInvalidReleaseDate", bad, err)
		}
	}
}

func TestResolve_BuildsRecordFromDetail(t *testing.T) {
	r := &fakeMovieRepo{}
	d := &catalog.Detail{ID: 680, OriginalTitle: "Pulp Fiction", ReleaseDate: "1994-09-10", PosterPath: "/p.jpg", Overview: "o"}
	svc := NewSelectionService(nil, r, detailCatalog(d, nil))

	m, err := svc.Resolve(context.Background(), 680)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.ID != 42 || m.Title != "Pulp Fiction" || m.Year != 1994 || m.Description != "o" {
		t.Fatalf("unexpected movie: %+v", m)
	}
	if m.ImgURL != DefaultImageBaseURL+"/p.jpg" {
		t.Fatalf("unexpected img url %q", m.ImgURL)
	}
	if m.Rating != nil || m.Review != nil {
		t.Fatalf("rating/review must start unset: %+v", m)
	}
}

func TestResolve_InvalidReleaseDate_NoWrite(t *testing.T) {
	r := &fakeMovieRepo{}
	d := &catalog.Detail{OriginalTitle: "X", ReleaseDate: "", PosterPath: "/p", Overview: "o"}
	svc := NewSelectionService(nil, r, detailCatalog(d, nil))

	if _, err := svc.Resolve(context.Background(), 1); !errors.Is(err, ErrInvalidReleaseDate) {
		t.Fatalf("expected ErrInvalidReleaseDate, got %v", err)
	}
	if r.created != nil {
		t.Fatalf("no insert expected")
	}
}

func TestResolve_PropagatesCatalogErrors(t *testing.T) {
	for _, want := range []error{catalog.ErrCatalogUnavailable, catalog.ErrCatalogMalformed} {
		svc := NewSelectionService(nil, &fakeMovieRepo{}, detailCatalog(nil, want))
		if _, err := svc.Resolve(context.Background(), 1); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestResolve_DuplicateTitle(t *testing.T) {
	r := &fakeMovieRepo{createErr: repo.ErrDuplicateTitle}
	d := &catalog.Detail{OriginalTitle: "X", ReleaseDate: "2000-01-01", PosterPath: "/p", Overview: "o"}
	svc := NewSelectionService(nil, r, detailCatalog(d, nil))

	if _, err := svc.Resolve(context.Background(), 1); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
}

func TestResolve_WithStore_SecondSelectionIsDuplicate(t *testing.T) {
	db := newTestDB(t)
	d := &catalog.Detail{OriginalTitle: "Heat", ReleaseDate: "1995-12-15", PosterPath: "/h.jpg", Overview: "o"}
	svc := NewSelectionService(db, nil, detailCatalog(d, nil))
	svc.ImageBaseURL = "https://img/"

	m, err := svc.Resolve(context.Background(), 949)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.ID == 0 || m.ImgURL != "https://img//h.jpg" {
		t.Fatalf("unexpected movie: %+v", m)
	}
	if _, err := svc.Resolve(context.Background(), 949); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	list, _ := repo.ListMovies(context.Background(), db)
	if len(list) != 1 {
		t.Fatalf("expected exactly one stored movie, got %d", len(list))
	}
}

func TestSearch_PassThroughAndUnconfigured(t *testing.T) {
	want := []catalog.SearchResult{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}
	svc := NewSelectionService(nil, nil, fakeCatalog{
		searchFn: func(_ context.Context, q string) ([]catalog.SearchResult, error) {
			if q != "q" {
				t.Errorf("unexpected query %q", q)
			}
			return want, nil
		},
	})
	got, err := svc.Search(context.Background(), "q")
	if err != nil || len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("Search: %v err=%v", got, err)
	}

	bare := NewSelectionService(nil, nil, nil)
	if _, err := bare.Search(context.Background(), "q"); !errors.Is(err, ErrCatalogNotConfigured) {
		t.Fatalf("expected ErrCatalogNotConfigured, got %v", err)
	}
	if _, err := bare.Resolve(context.Background(), 1); !errors.Is(err, ErrCatalogNotConfigured) {
		t.Fatalf("expected ErrCatalogNotConfigured, got %v", err)
	}
}
