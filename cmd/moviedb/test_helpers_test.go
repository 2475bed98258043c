package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	dbPath  string
	catalog *httptest.Server
}

// setupCLITestEnv points the configuration at a fresh SQLite file and a stub
// catalog serving three titles.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(stubCatalog))
	t.Cleanup(srv.Close)

	dbPath := filepath.Join(t.TempDir(), "movies.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("CATALOG_BASE_URL", srv.URL)
	t.Setenv("CATALOG_TOKEN", "test-token")
	t.Setenv("CATALOG_LANGUAGE", "en-US")
	t.Setenv("CATALOG_IMAGE_BASE_URL", "https://img.test/w500")

	return &cliTestEnv{dbPath: dbPath, catalog: srv}
}

var stubDetails = map[string]string{
	"/movie/348": `{"id":348,"original_title":"Alien","release_date":"1979-05-25","poster_path":"/alien.jpg","overview":"In space no one can hear you scream."}`,
	"/movie/679": `{"id":679,"original_title":"Aliens","release_date":"1986-07-18","poster_path":"/aliens.jpg","overview":"This time it's war."}`,
	"/movie/1":   `{"id":1,"original_title":"Undated","release_date":"","poster_path":"/u.jpg","overview":"No date."}`,
}

func stubCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/search/movie" {
		if strings.Contains(strings.ToLower(r.URL.Query().Get("query")), "alien") {
			_, _ = w.Write([]byte(`{"page":1,"results":[` +
				`{"id":348,"title":"Alien","release_date":"1979-05-25","poster_path":"/alien.jpg","overview":"x"},` +
				`{"id":679,"title":"Aliens","release_date":"1986-07-18","poster_path":null,"overview":"y"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
		return
	}
	if body, ok := stubDetails[r.URL.Path]; ok {
		_, _ = w.Write([]byte(body))
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"status_code":34}`))
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("%v: %v (stderr %q)", args, err, stderr)
	}
	return out
}

type listedMovie struct {
	ID      uint     `json:"id"`
	Title   string   `json:"title"`
	Year    int      `json:"year"`
	Rating  *float64 `json:"rating"`
	Ranking int      `json:"ranking"`
	Review  *string  `json:"review"`
	ImgURL  string   `json:"img_url"`
}

func listJSON(t *testing.T) []listedMovie {
	t.Helper()
	out := mustRunCLI(t, "list", "--json")
	var movies []listedMovie
	if err := json.Unmarshal([]byte(out), &movies); err != nil {
		t.Fatalf("decode list output %q: %v", out, err)
	}
	return movies
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
